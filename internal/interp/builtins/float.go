package builtins

import (
	"math"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerFloat installs float arithmetic, math, comparison, and casting
// overloads (prim_flo.c). Floats have no bitwise/logical/random overloads
// in the original — those stay integer-only.
func registerFloat(it *interp.Interp) {
	anyFlo := k1(ast.KindFloat)

	reg(it, "+", 1, ast.MaxArgsInf, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		var sum float64
		for _, a := range args {
			sum += asFloat(a)
		}
		return interp.FloatValue(sum)
	})
	reg(it, "-", 1, ast.MaxArgsInf, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asFloat(args[0])
		for _, a := range args[1:] {
			result -= asFloat(a)
		}
		return interp.FloatValue(result)
	})
	reg(it, "*", 1, ast.MaxArgsInf, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asFloat(args[0])
		for _, a := range args[1:] {
			result *= asFloat(a)
		}
		return interp.FloatValue(result)
	})
	reg(it, "/", 1, ast.MaxArgsInf, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asFloat(args[0])
		for _, a := range args[1:] {
			result /= asFloat(a)
		}
		return interp.FloatValue(result)
	})
	reg(it, "**", 1, ast.MaxArgsInf, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asFloat(args[0])
		for _, a := range args[1:] {
			result = math.Pow(result, asFloat(a))
		}
		return interp.FloatValue(result)
	})

	reg(it, "sqrt", 1, 1, anyFlo, unary1f(math.Sqrt))
	reg(it, "log", 1, 1, anyFlo, unary1f(math.Log10))
	reg(it, "abs", 1, 1, anyFlo, unary1f(math.Abs))
	reg(it, "max", 1, ast.MaxArgsInf, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asFloat(args[0])
		for _, a := range args[1:] {
			if v := asFloat(a); v > result {
				result = v
			}
		}
		return interp.FloatValue(result)
	})
	reg(it, "min", 1, ast.MaxArgsInf, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asFloat(args[0])
		for _, a := range args[1:] {
			if v := asFloat(a); v < result {
				result = v
			}
		}
		return interp.FloatValue(result)
	})
	reg(it, "round", 1, 1, anyFlo, unary1f(math.Round))
	reg(it, "ceil", 1, 1, anyFlo, unary1f(math.Ceil))
	reg(it, "floor", 1, 1, anyFlo, unary1f(math.Floor))

	reg(it, "sin", 1, 1, anyFlo, unary1f(math.Sin))
	reg(it, "cos", 1, 1, anyFlo, unary1f(math.Cos))
	reg(it, "tan", 1, 1, anyFlo, unary1f(math.Tan))
	reg(it, "asin", 1, 1, anyFlo, unary1f(math.Asin))
	reg(it, "acos", 1, 1, anyFlo, unary1f(math.Acos))
	reg(it, "atan", 1, 1, anyFlo, unary1f(math.Atan))
	reg(it, "atan2", 2, 2, k2(ast.KindFloat, ast.KindFloat), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.FloatValue(math.Atan2(asFloat(args[0]), asFloat(args[1])))
	})
	reg(it, "sinh", 1, 1, anyFlo, unary1f(math.Sinh))
	reg(it, "cosh", 1, 1, anyFlo, unary1f(math.Cosh))
	reg(it, "tanh", 1, 1, anyFlo, unary1f(math.Tanh))
	reg(it, "radians", 1, 1, anyFlo, unary1f(func(f float64) float64 { return f * math.Pi / 180 }))
	reg(it, "degrees", 1, 1, anyFlo, unary1f(func(f float64) float64 { return f * 180 / math.Pi }))

	reg(it, "<", 1, ast.MaxArgsInf, anyFlo, chainFloCmp(func(a, b float64) bool { return a < b }))
	reg(it, "<=", 1, ast.MaxArgsInf, anyFlo, chainFloCmp(func(a, b float64) bool { return a <= b }))
	reg(it, "==", 1, ast.MaxArgsInf, anyFlo, chainFloCmp(func(a, b float64) bool { return a == b }))
	reg(it, "!=", 1, ast.MaxArgsInf, anyFlo, chainFloCmp(func(a, b float64) bool { return a != b }))
	reg(it, ">=", 1, ast.MaxArgsInf, anyFlo, chainFloCmp(func(a, b float64) bool { return a >= b }))
	reg(it, ">", 1, ast.MaxArgsInf, anyFlo, chainFloCmp(func(a, b float64) bool { return a > b }))

	reg(it, "int", 1, 1, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(asInt(args[0]))
	})
	reg(it, "integer", 1, 1, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(asInt(args[0]))
	})
	reg(it, "flo", 1, 1, anyFlo, identity)
	reg(it, "float", 1, 1, anyFlo, identity)
	reg(it, "str", 1, 1, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(ast.Print(args[0]))
	})
	reg(it, "string", 1, 1, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(ast.Print(args[0]))
	})
	reg(it, "arr", 1, 1, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.ArrayValue([]*ast.Expr{interp.Copy(args[0])})
	})
	reg(it, "array", 1, 1, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.ArrayValue([]*ast.Expr{interp.Copy(args[0])})
	})
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyFlo, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindFloat, Str: "float"}
		})
	}
}

func chainFloCmp(cmp func(a, b float64) bool) interp.PrimitiveFunc {
	return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		for i := 1; i < len(args); i++ {
			if !cmp(asFloat(args[i-1]), asFloat(args[i])) {
				return boolValue(false)
			}
		}
		return boolValue(true)
	}
}

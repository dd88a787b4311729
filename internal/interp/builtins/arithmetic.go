package builtins

import (
	"math"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/errlog"
	"github.com/apptap/tap/internal/interp"
)

// base10Round is the round/ceil/floor accuracy unit (original's BASE
// constant, source/constants.h): round/ceil/floor's optional second
// argument picks a power-of-ten digit of accuracy, defaulting to 10^1.
const base10Round = 10

func asInt(v *ast.Expr) int64 {
	switch v.Kind {
	case ast.KindInt:
		return v.Int
	case ast.KindFloat:
		return int64(v.Float)
	default:
		return 0
	}
}

func asFloat(v *ast.Expr) float64 {
	switch v.Kind {
	case ast.KindInt:
		return float64(v.Int)
	case ast.KindFloat:
		return v.Float
	default:
		return 0
	}
}

// registerInt installs integer arithmetic, math, bitwise, logical,
// comparison, and casting overloads (prim_int.c).
func registerInt(it *interp.Interp) {
	anyInt := k1(ast.KindInt)

	reg(it, "error", 2, 2, k2(ast.KindInt, ast.KindString), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		it.Errors.Record(errlog.Code(args[0].Int), args[1].Str, args[0].Line, args[0].Column)
		return interp.NilValue()
	})

	reg(it, "+", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		var sum int64
		for _, a := range args {
			sum += asInt(a)
		}
		return interp.IntValue(sum)
	})
	reg(it, "-", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asInt(args[0])
		for _, a := range args[1:] {
			result -= asInt(a)
		}
		return interp.IntValue(result)
	})
	reg(it, "*", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asInt(args[0])
		for _, a := range args[1:] {
			result *= asInt(a)
		}
		return interp.IntValue(result)
	})
	reg(it, "/", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asInt(args[0])
		for _, a := range args[1:] {
			d := asInt(a)
			if d == 0 {
				return argErr(it, args, "division by zero")
			}
			result /= d
		}
		return interp.IntValue(result)
	})
	reg(it, "%", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asInt(args[0])
		for _, a := range args[1:] {
			d := asInt(a)
			if d == 0 {
				return argErr(it, args, "modulus by zero")
			}
			result %= d
		}
		return interp.IntValue(result)
	})
	reg(it, "**", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asFloat(args[0])
		for _, a := range args[1:] {
			result = math.Pow(result, asFloat(a))
		}
		return interp.IntValue(int64(result))
	})

	reg(it, "sqrt", 1, 1, anyInt, unary1f(math.Sqrt))
	reg(it, "log", 1, 1, anyInt, unary1f(math.Log10))
	reg(it, "abs", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n := asInt(args[0])
		if n < 0 {
			n = -n
		}
		return interp.IntValue(n)
	})
	reg(it, "max", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asInt(args[0])
		for _, a := range args[1:] {
			if v := asInt(a); v > result {
				result = v
			}
		}
		return interp.IntValue(result)
	})
	reg(it, "min", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asInt(args[0])
		for _, a := range args[1:] {
			if v := asInt(a); v < result {
				result = v
			}
		}
		return interp.IntValue(result)
	})
	reg(it, "round", 1, 2, anyInt, roundLike(func(v, nearest int64) int64 {
		roundoff := v % nearest
		if roundoff < 0 {
			roundoff += nearest
		}
		if roundoff < nearest/2 || (roundoff == nearest/2 && (nearest/base10Round)%2 == 0) {
			return v - roundoff
		}
		return v + (nearest - roundoff)
	}))
	reg(it, "ceil", 1, 2, anyInt, roundLike(func(v, nearest int64) int64 {
		rem := v % nearest
		if rem == 0 {
			return v
		}
		if rem < 0 {
			rem += nearest
		}
		return v + (nearest - rem)
	}))
	reg(it, "floor", 1, 2, anyInt, roundLike(func(v, nearest int64) int64 {
		rem := v % nearest
		if rem < 0 {
			rem += nearest
		}
		return v - rem
	}))

	reg(it, "sin", 1, 1, anyInt, unary1f(math.Sin))
	reg(it, "cos", 1, 1, anyInt, unary1f(math.Cos))
	reg(it, "tan", 1, 1, anyInt, unary1f(math.Tan))
	reg(it, "asin", 1, 1, anyInt, unary1f(math.Asin))
	reg(it, "acos", 1, 1, anyInt, unary1f(math.Acos))
	reg(it, "atan", 1, 1, anyInt, unary1f(math.Atan))
	reg(it, "atan2", 2, 2, k2(ast.KindInt, ast.KindInt), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.FloatValue(math.Atan2(asFloat(args[0]), asFloat(args[1])))
	})
	reg(it, "sinh", 1, 1, anyInt, unary1f(math.Sinh))
	reg(it, "cosh", 1, 1, anyInt, unary1f(math.Cosh))
	reg(it, "tanh", 1, 1, anyInt, unary1f(math.Tanh))
	reg(it, "radians", 1, 1, anyInt, unary1f(func(f float64) float64 { return f * math.Pi / 180 }))
	reg(it, "degrees", 1, 1, anyInt, unary1f(func(f float64) float64 { return f * 180 / math.Pi }))

	reg(it, "~", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(^asInt(args[0]))
	})
	reg(it, "&", 1, ast.MaxArgsInf, anyInt, foldInt(func(a, b int64) int64 { return a & b }))
	reg(it, "|", 1, ast.MaxArgsInf, anyInt, foldInt(func(a, b int64) int64 { return a | b }))
	reg(it, "^", 1, ast.MaxArgsInf, anyInt, foldInt(func(a, b int64) int64 { return a ^ b }))
	reg(it, "<<", 2, 2, k2(ast.KindInt, ast.KindInt), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(asInt(args[0]) << uint(asInt(args[1])))
	})
	reg(it, ">>", 2, 2, k2(ast.KindInt, ast.KindInt), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(asInt(args[0]) >> uint(asInt(args[1])))
	})
	reg(it, ">>>", 2, 2, k2(ast.KindInt, ast.KindInt), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(int64(uint64(asInt(args[0])) >> uint(asInt(args[1]))))
	})

	reg(it, "!", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return boolValue(!interp.IsTruthy(args[0]))
	})
	reg(it, "&&", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		for _, a := range args {
			if !interp.IsTruthy(a) {
				return boolValue(false)
			}
		}
		return boolValue(true)
	})
	reg(it, "||", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		for _, a := range args {
			if interp.IsTruthy(a) {
				return boolValue(true)
			}
		}
		return boolValue(false)
	})
	reg(it, "^^", 1, ast.MaxArgsInf, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		count := 0
		for _, a := range args {
			if interp.IsTruthy(a) {
				count++
			}
		}
		return boolValue(count%2 == 1)
	})

	reg(it, "random", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n := asInt(args[0])
		if n <= 0 {
			return interp.IntValue(0)
		}
		return interp.IntValue(nextRandom() % n)
	})
	reg(it, "seed-random", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		seedRandom(asInt(args[0]))
		return interp.NilValue()
	})
	reg(it, "from-ascii", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(string(rune(asInt(args[0]))))
	})
	reg(it, "ascii", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(string(rune(asInt(args[0]))))
	})
	reg(it, "bool", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return boolValue(interp.IsTruthy(args[0]))
	})

	registerIntComparisons(it, anyInt)

	reg(it, "int", 1, 1, anyInt, identity)
	reg(it, "integer", 1, 1, anyInt, identity)
	reg(it, "flo", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.FloatValue(asFloat(args[0]))
	})
	reg(it, "float", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.FloatValue(asFloat(args[0]))
	})
	reg(it, "str", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(ast.Print(args[0]))
	})
	reg(it, "string", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(ast.Print(args[0]))
	})
	reg(it, "arr", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.ArrayValue([]*ast.Expr{interp.Copy(args[0])})
	})
	reg(it, "array", 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.ArrayValue([]*ast.Expr{interp.Copy(args[0])})
	})
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindInt, Str: "int"}
		})
	}
}

func registerIntComparisons(it *interp.Interp, anyInt [][]ast.Kind) {
	reg(it, "<", 1, ast.MaxArgsInf, anyInt, chainIntCmp(func(a, b int64) bool { return a < b }))
	reg(it, "<=", 1, ast.MaxArgsInf, anyInt, chainIntCmp(func(a, b int64) bool { return a <= b }))
	reg(it, "==", 1, ast.MaxArgsInf, anyInt, chainIntCmp(func(a, b int64) bool { return a == b }))
	reg(it, "!=", 1, ast.MaxArgsInf, anyInt, chainIntCmp(func(a, b int64) bool { return a != b }))
	reg(it, ">=", 1, ast.MaxArgsInf, anyInt, chainIntCmp(func(a, b int64) bool { return a >= b }))
	reg(it, ">", 1, ast.MaxArgsInf, anyInt, chainIntCmp(func(a, b int64) bool { return a > b }))
}

func chainIntCmp(cmp func(a, b int64) bool) interp.PrimitiveFunc {
	return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		for i := 1; i < len(args); i++ {
			if !cmp(asInt(args[i-1]), asInt(args[i])) {
				return boolValue(false)
			}
		}
		return boolValue(true)
	}
}

func foldInt(op func(a, b int64) int64) interp.PrimitiveFunc {
	return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		result := asInt(args[0])
		for _, a := range args[1:] {
			result = op(result, asInt(a))
		}
		return interp.IntValue(result)
	}
}

func unary1f(fn func(float64) float64) interp.PrimitiveFunc {
	return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.FloatValue(fn(asFloat(args[0])))
	}
}

func roundLike(op func(v, nearest int64) int64) interp.PrimitiveFunc {
	return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		v := asInt(args[0])
		digits := int64(1)
		if len(args) == 2 {
			digits = asInt(args[1])
		}
		nearest := int64(1)
		for i := int64(0); i < digits; i++ {
			nearest *= base10Round
		}
		if nearest > 1 {
			v = op(v, nearest)
		}
		return interp.IntValue(v)
	}
}

func boolValue(b bool) *ast.Expr {
	if b {
		return interp.IntValue(1)
	}
	return interp.IntValue(0)
}

func identity(it *interp.Interp, args []*ast.Expr) *ast.Expr {
	return interp.Copy(args[0])
}

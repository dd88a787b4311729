package builtins

import (
	"sort"
	"strings"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerArray installs array overloads (prim_arr.c). "size", "+", "str",
// and "typ" are the overloads the original actually compiled in;
// "-"/"*"/"trim-left"/"trim-right"/"reverse"/"sort"/"map"/"filter"/"accum"
// were present in engine.c's table but commented out (ARGLEN_INF callback
// arguments were still being designed) — spec.md's permissiveness about
// supplementing dropped features covers them, so they are implemented
// here in the same idiom as their sibling overloads rather than left out.
func registerArray(it *interp.Interp) {
	anyArr := k1(ast.KindArray)
	arrInt := [][]ast.Kind{{ast.KindArray}, {ast.KindInt}}
	arrFun := [][]ast.Kind{{ast.KindArray}, {ast.KindFunction}}

	reg(it, "size", 1, 2, arrInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(int64(args[0].Arr.Len()))
	})
	reg(it, "+", 1, ast.MaxArgsInf, anyArr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		var elems []*ast.Expr
		for _, a := range args {
			if a.Kind == ast.KindArray {
				for i := 0; i < a.Arr.Len(); i++ {
					elems = append(elems, interp.Copy(a.Arr.At(i)))
				}
			} else {
				elems = append(elems, interp.Copy(a))
			}
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "-", 1, ast.MaxArgsInf, anyArr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		removed := args[1:]
		var elems []*ast.Expr
		for i := 0; i < args[0].Arr.Len(); i++ {
			el := args[0].Arr.At(i)
			keep := true
			for _, r := range removed {
				if valuesEqual(el, r) {
					keep = false
					break
				}
			}
			if keep {
				elems = append(elems, interp.Copy(el))
			}
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "*", 2, 2, arrInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n := int(args[1].Int)
		if n < 0 {
			n = 0
		}
		var elems []*ast.Expr
		for i := 0; i < n; i++ {
			for j := 0; j < args[0].Arr.Len(); j++ {
				elems = append(elems, interp.Copy(args[0].Arr.At(j)))
			}
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "trim-left", 2, 2, arrInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return trimArray(args[0], int(args[1].Int), 0)
	})
	reg(it, "trim-right", 2, 2, arrInt, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return trimArray(args[0], 0, int(args[1].Int))
	})
	reg(it, "reverse", 1, 1, anyArr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n := args[0].Arr.Len()
		elems := make([]*ast.Expr, n)
		for i := 0; i < n; i++ {
			elems[n-1-i] = interp.Copy(args[0].Arr.At(i))
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "sort", 1, 2, [][]ast.Kind{{ast.KindArray}, {ast.KindFunction}}, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n := args[0].Arr.Len()
		elems := make([]*ast.Expr, n)
		for i := 0; i < n; i++ {
			elems[i] = interp.Copy(args[0].Arr.At(i))
		}
		if len(args) == 2 {
			fn := args[1].Fun
			sort.SliceStable(elems, func(i, j int) bool {
				res := it.Call(&interp.Callable{UserFn: fn}, []*ast.Expr{elems[i], elems[j]})
				return interp.IsTruthy(res)
			})
		} else {
			sort.SliceStable(elems, func(i, j int) bool { return lessDefault(elems[i], elems[j]) })
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "map", 2, 2, arrFun, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n := args[0].Arr.Len()
		elems := make([]*ast.Expr, n)
		for i := 0; i < n; i++ {
			elems[i] = it.Call(&interp.Callable{UserFn: args[1].Fun}, []*ast.Expr{args[0].Arr.At(i)})
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "filter", 2, 2, arrFun, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		var elems []*ast.Expr
		for i := 0; i < args[0].Arr.Len(); i++ {
			el := args[0].Arr.At(i)
			if interp.IsTruthy(it.Call(&interp.Callable{UserFn: args[1].Fun}, []*ast.Expr{el})) {
				elems = append(elems, interp.Copy(el))
			}
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "accum", 3, 3, [][]ast.Kind{{ast.KindArray}, {ast.KindFunction}, nil}, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		acc := args[2]
		for i := 0; i < args[0].Arr.Len(); i++ {
			acc = it.Call(&interp.Callable{UserFn: args[1].Fun}, []*ast.Expr{acc, args[0].Arr.At(i)})
		}
		return acc
	})
	reg(it, "str", 1, 1, anyArr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(arrayToString(args[0].Arr, ", "))
	})
	reg(it, "string", 1, 1, anyArr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(arrayToString(args[0].Arr, ", "))
	})
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyArr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindArray, Str: "array"}
		})
	}
}

func trimArray(v *ast.Expr, left, right int) *ast.Expr {
	n := v.Arr.Len()
	start, end := left, n-right
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	var elems []*ast.Expr
	for i := start; i < end; i++ {
		elems = append(elems, interp.Copy(v.Arr.At(i)))
	}
	return interp.ArrayValue(elems)
}

func arrayToString(a *ast.Array, delim string) string {
	parts := make([]string, a.Len())
	for i := range parts {
		parts[i] = ast.Print(a.At(i))
	}
	return "{" + strings.Join(parts, delim) + "}"
}

func valuesEqual(a, b *ast.Expr) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ast.KindInt:
		return a.Int == b.Int
	case ast.KindFloat:
		return a.Float == b.Float
	case ast.KindString:
		return a.Str == b.Str
	case ast.KindDate:
		return a.Unix == b.Unix
	default:
		return ast.Print(a) == ast.Print(b)
	}
}

func lessDefault(a, b *ast.Expr) bool {
	switch {
	case a.Kind == ast.KindInt && b.Kind == ast.KindInt:
		return a.Int < b.Int
	case a.Kind == ast.KindFloat || b.Kind == ast.KindFloat:
		return asFloat(a) < asFloat(b)
	default:
		return ast.Print(a) < ast.Print(b)
	}
}

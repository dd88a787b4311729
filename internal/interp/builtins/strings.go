package builtins

import (
	"strconv"
	"strings"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerString installs string overloads (prim_str.c). "set" and
// "new-type" are special forms (see builtins.go's package doc) since
// they need set's name operand unread and new-type's body unforced.
func registerString(it *interp.Interp) {
	anyStr := k1(ast.KindString)

	reg(it, "print", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		it.Out.Write([]byte(args[0].Str))
		if it.Options.PrintTrailingNewline {
			it.Out.Write([]byte{'\n'})
		}
		return interp.NilValue()
	})
	reg(it, "copy", 1, 1, anyStr, identity)
	reg(it, "size", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(int64(len(args[0].Str)))
	})
	reg(it, "char", 2, 2, k2(ast.KindString, ast.KindInt), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		s, i := args[0].Str, int(args[1].Int)
		if i < 0 || i >= len(s) {
			return argErr(it, args, "char index out of bounds")
		}
		return interp.IntValue(int64(s[i]))
	})
	reg(it, "substr", 2, 3, [][]ast.Kind{{ast.KindString}, {ast.KindInt}, {ast.KindInt}}, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		s := args[0].Str
		start := int(args[1].Int)
		end := len(s)
		if len(args) == 3 {
			end = int(args[2].Int) + 1
		}
		if start < 0 {
			start = 0
		}
		if end > len(s) {
			end = len(s)
		}
		if start > end {
			start = end
		}
		return interp.StringValue(s[start:end])
	})

	findArgKinds := [][]ast.Kind{{ast.KindString}, nil}
	reg(it, "find", 2, 2, findArgKinds, strFind(false))
	reg(it, "find-last", 2, 2, findArgKinds, strFind(true))
	reg(it, "find-all", 2, 2, findArgKinds, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		haystack := args[0].Str
		needle := needleOf(args[1])
		var elems []*ast.Expr
		if needle == "" {
			return interp.ArrayValue(elems)
		}
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				elems = append(elems, interp.IntValue(int64(i)))
				i += len(needle) - 1
			}
		}
		return interp.ArrayValue(elems)
	})
	reg(it, "contains", 1, 2, findArgKinds, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		if len(args) < 2 {
			return boolValue(false)
		}
		return boolValue(strings.Contains(args[0].Str, needleOf(args[1])))
	})

	reg(it, "+", 1, ast.MaxArgsInf, anyStr, concatStr)
	reg(it, "concat", 1, ast.MaxArgsInf, anyStr, concatStr)
	reg(it, "replace", 3, 3, k3(ast.KindString, ast.KindString, ast.KindString), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(strings.ReplaceAll(args[0].Str, args[1].Str, args[2].Str))
	})
	reg(it, "insert", 3, 3, k3(ast.KindString, ast.KindString, ast.KindString), func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(strings.ReplaceAll(args[0].Str, args[1].Str, args[1].Str+args[2].Str))
	})
	removeKinds := [][]ast.Kind{{ast.KindString}, nil, nil}
	reg(it, "-", 3, 3, removeKinds, strRemove)
	reg(it, "remove", 3, 3, removeKinds, strRemove)
	reg(it, "reverse", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		r := []rune(args[0].Str)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return interp.StringValue(string(r))
	})

	registerCasing(it, anyStr)

	reg(it, "int", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n, _ := strconv.ParseInt(strings.TrimSpace(args[0].Str), 10, 64)
		return interp.IntValue(n)
	})
	reg(it, "integer", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		n, _ := strconv.ParseInt(strings.TrimSpace(args[0].Str), 10, 64)
		return interp.IntValue(n)
	})
	reg(it, "flo", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		f, _ := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
		return interp.FloatValue(f)
	})
	reg(it, "float", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		f, _ := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
		return interp.FloatValue(f)
	})
	reg(it, "str", 1, 1, anyStr, identity)
	reg(it, "string", 1, 1, anyStr, identity)
	reg(it, "arr", 1, 1, anyStr, strToArr)
	reg(it, "array", 1, 1, anyStr, strToArr)
	reg(it, "dat", 1, 1, anyStr, strToDate)
	reg(it, "date", 1, 1, anyStr, strToDate)
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindString, Str: "string"}
		})
	}
}

func needleOf(v *ast.Expr) string {
	if v.Kind == ast.KindInt {
		return string(rune(v.Int))
	}
	return v.Str
}

func strFind(last bool) interp.PrimitiveFunc {
	return func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		needle := needleOf(args[1])
		var idx int
		if last {
			idx = strings.LastIndex(args[0].Str, needle)
		} else {
			idx = strings.Index(args[0].Str, needle)
		}
		return interp.IntValue(int64(idx))
	}
}

func concatStr(it *interp.Interp, args []*ast.Expr) *ast.Expr {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.Str)
	}
	return interp.StringValue(sb.String())
}

// strRemove replaces every occurrence of the second argument (substring
// or character) with the third, mirroring prim_sRemove's delegation
// through prim_sReplace with an empty replacement — generalised here to
// accept any replacement, matching "remove"/"-"'s shared 3-arg shape.
func strRemove(it *interp.Interp, args []*ast.Expr) *ast.Expr {
	needle := needleOf(args[1])
	replacement := needleOf(args[2])
	if needle == "" {
		return interp.StringValue(args[0].Str)
	}
	return interp.StringValue(strings.ReplaceAll(args[0].Str, needle, replacement))
}

func strToArr(it *interp.Interp, args []*ast.Expr) *ast.Expr {
	runes := []rune(args[0].Str)
	elems := make([]*ast.Expr, len(runes))
	for i, r := range runes {
		elems[i] = interp.IntValue(int64(r))
	}
	return interp.ArrayValue(elems)
}

func strToDate(it *interp.Interp, args []*ast.Expr) *ast.Expr {
	for _, layout := range []string{"01/02/2006 03:04:05 PM", "2006-01-02T15:04:05Z07:00", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := parseDate(args[0].Str, layout); err == nil {
			return interp.DateValue(t)
		}
	}
	return argErr(it, args, "could not parse date")
}

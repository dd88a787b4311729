package builtins

import (
	"fmt"
	"strings"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerFunction installs function-value overloads (prim_fun.c). "fun"
// and "function" both return a copy of the function value, matching
// prim_uFun's self-identity cast.
func registerFunction(it *interp.Interp) {
	anyFun := k1(ast.KindFunction)

	reg(it, "str", 1, 1, anyFun, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(describeFunction(args[0].Fun))
	})
	reg(it, "string", 1, 1, anyFun, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(describeFunction(args[0].Fun))
	})
	reg(it, "fun", 1, 1, anyFun, identity)
	reg(it, "function", 1, 1, anyFun, identity)
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyFun, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindFunction, Str: "function"}
		})
	}
}

func describeFunction(fn *ast.Function) string {
	if fn == nil {
		return "(function)"
	}
	names := make([]string, len(fn.Args))
	for i, a := range fn.Args {
		names[i] = a.Name
	}
	variadic := ""
	if fn.MaxArgs == ast.MaxArgsInf {
		variadic = " ..."
	}
	return fmt.Sprintf("(function (%s%s) ...)", strings.Join(names, " "), variadic)
}

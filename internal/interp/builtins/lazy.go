package builtins

import (
	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerLazy installs the lazy-expression-kind overloads that are not
// already special forms (prim_laz.c): "eval", "function"/"lambda", and
// "if" are handled once as special forms instead (see builtins.go's
// package doc) since they need raw operand trees. "&&"/"||"/"^^" on a
// literal lazy operand force it then delegate to the same truthiness
// fold as their integer overloads (prim_lAnd/prim_lOr/prim_lXor alias
// straight to prim_iLand/prim_iLor/prim_iLxor in the original).
func registerLazy(it *interp.Interp) {
	anyLaz := k1(ast.KindLazyExp)

	reg(it, "&&", 1, ast.MaxArgsInf, anyLaz, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		for _, a := range args {
			if !interp.IsTruthy(it.Force(a)) {
				return boolValue(false)
			}
		}
		return boolValue(true)
	})
	reg(it, "||", 1, ast.MaxArgsInf, anyLaz, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		for _, a := range args {
			if interp.IsTruthy(it.Force(a)) {
				return boolValue(true)
			}
		}
		return boolValue(false)
	})
	reg(it, "^^", 1, ast.MaxArgsInf, anyLaz, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		count := 0
		for _, a := range args {
			if interp.IsTruthy(it.Force(a)) {
				count++
			}
		}
		return boolValue(count%2 == 1)
	})

	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyLaz, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindLazyExp, Str: "lazy-expression"}
		})
	}
}

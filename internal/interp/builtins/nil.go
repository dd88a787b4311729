package builtins

import (
	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerNil installs nil's three overloads (prim_nil.c): nil always
// casts to the integer 0, the literal string "[nil]", and the KindNil
// type tag itself.
func registerNil(it *interp.Interp) {
	toInt := func(it *interp.Interp, args []*ast.Expr) *ast.Expr { return interp.IntValue(0) }
	toStr := func(it *interp.Interp, args []*ast.Expr) *ast.Expr { return interp.StringValue("[nil]") }
	toTyp := func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindNil, Str: "nil"}
	}
	for _, name := range []string{"int", "integer"} {
		reg(it, name, 1, 1, k1(ast.KindNil), toInt)
	}
	for _, name := range []string{"str", "string"} {
		reg(it, name, 1, 1, k1(ast.KindNil), toStr)
	}
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, k1(ast.KindNil), toTyp)
	}
}

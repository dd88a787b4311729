package builtins

import (
	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerObject installs object overloads (prim_obj.c): a copy and the
// object's own type tag.
func registerObject(it *interp.Interp) {
	anyObj := k1(ast.KindObject)

	reg(it, "obj", 1, 1, anyObj, identity)
	reg(it, "object", 1, 1, anyObj, identity)
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyObj, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
			return &ast.Expr{Kind: ast.KindType, TypeID: ast.KindObject, Str: "object"}
		})
	}
}

package builtins

import (
	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerType installs type-value overloads (prim_typ.c), including the
// original's aliasing of "obj"/"object" to prim_tNew under the TYPE_TYP
// receiver (source/engine.c's insertPrimHash for "obj"/"object" under
// TYPE_TYP, alongside "new"). Overload resolution keys on (name, arity,
// per-position kinds): a 2-arg (type, lazy-body) construction call and
// the 1-arg (object) copy overload registered in objects.go never
// collide, so both meanings coexist under the same two names.
func registerType(it *interp.Interp) {
	anyTyp := k1(ast.KindType)
	typLaz := [][]ast.Kind{{ast.KindType}, {ast.KindLazyExp}}

	construct := func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		var body *ast.Expr
		if len(args) > 1 {
			body = args[1]
		}
		return it.ConstructFromType(args[0], body, args[0].Line, args[0].Column)
	}
	reg(it, "obj", 1, 2, typLaz, construct)
	reg(it, "object", 1, 2, typLaz, construct)

	reg(it, "int", 1, 1, anyTyp, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(int64(args[0].TypeID))
	})
	reg(it, "integer", 1, 1, anyTyp, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.IntValue(int64(args[0].TypeID))
	})
	reg(it, "str", 1, 1, anyTyp, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(ast.Print(args[0]))
	})
	reg(it, "string", 1, 1, anyTyp, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(ast.Print(args[0]))
	})
	for _, name := range []string{"typ", "type", "::"} {
		reg(it, name, 1, 1, anyTyp, identity)
	}
}

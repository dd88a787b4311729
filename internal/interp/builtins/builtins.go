// Package builtins registers Tap's primitive-function catalogue: the
// name/arity/kind-list overloads originally installed by engine.c's
// insertPrimHash table into the root environment. Each source file here
// groups one receiver kind's overloads, mirroring the original's
// prim_<kind>.c split (prim_nil.c, prim_int.c, prim_flo.c, prim_str.c,
// prim_arr.c, prim_dat.c, prim_obj.c, prim_fun.c, prim_typ.c).
//
// Five names registered in the original table are intentionally absent
// here: "set", "new-type", "function"/"lambda", "eval", and "if". All
// five need their operands' raw, unevaluated expression trees (to bind a
// name without reading it, to keep a type's property clauses unforced
// until validated, to capture a function body without running it, to
// force a value explicitly, and to evaluate only the taken branch) — a
// plain PrimitiveFunc receives already-evaluated arguments and cannot
// express that, so they are implemented once as special forms
// (internal/interp/specialforms.go) instead of once per receiving kind.
// The original's duplicate "if" registration under both TYPE_LAZ and
// TYPE_INT collapses to that single special form too, since sfIf's
// variadic condition/branch walk already forces whichever kind of value
// a condition expression produces.
package builtins

import (
	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/errlog"
	"github.com/apptap/tap/internal/interp"
)

// RegisterAll installs every primitive overload into it's root scope.
// Call once per fresh Interp, before evaluating any source.
func RegisterAll(it *interp.Interp) {
	registerNil(it)
	registerLazy(it)
	registerInt(it)
	registerFloat(it)
	registerString(it)
	registerArray(it)
	registerDate(it)
	registerObject(it)
	registerFunction(it)
	registerType(it)
	registerJSON(it)
}

func reg(it *interp.Interp, name string, min, max int, kinds [][]ast.Kind, fn interp.PrimitiveFunc) {
	interp.RegisterPrimitive(it, &interp.Primitive{
		Name: name, MinArgs: min, MaxArgs: max, ParamKinds: kinds, Fn: fn,
	})
}

// k1/k2/k3 build a ParamKinds list quickly for the common case of
// one-kind-per-position overloads, matching newTypelist/newTypelistWithNext
// in the original.
func k1(a ast.Kind) [][]ast.Kind { return [][]ast.Kind{{a}} }
func k2(a, b ast.Kind) [][]ast.Kind { return [][]ast.Kind{{a}, {b}} }
func k3(a, b, c ast.Kind) [][]ast.Kind { return [][]ast.Kind{{a}, {b}, {c}} }

func argErr(it *interp.Interp, args []*ast.Expr, msg string) *ast.Expr {
	line, col := 0, 0
	if len(args) > 0 {
		line, col = args[0].Line, args[0].Column
	}
	it.Errors.Record(errlog.InvalidArg, msg, line, col)
	return interp.NilValue()
}

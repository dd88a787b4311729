package interp

import "github.com/apptap/tap/internal/ast"

// FindFunction implements spec.md §4.E steps 1-2: scan scopes from current
// to root; within each scope, consider every entry named by head (most
// recently inserted first, the order SymbolTable.Lookup returns) and
// return the first whose arity and
// per-position kinds match args. Unlike a plain variable Lookup, this
// must keep walking outward when the innermost scope has entries for the
// name but none of them match — overload resolution, not shadowing.
func (it *Interp) FindFunction(name string, args []*ast.Expr) (*Callable, bool) {
	for i := it.Env.Depth() - 1; i >= 0; i-- {
		env := it.Env.scopes[i]
		for _, e := range env.Vars.Lookup(name) {
			cand := callableFromEntry(e)
			if cand == nil {
				continue
			}
			if !arityOK(cand, len(args)) {
				continue
			}
			if kindsOK(cand, args) {
				return cand, true
			}
		}
	}
	return nil, false
}

// Call invokes a resolved Callable (spec.md §4.E steps 3-4).
func (it *Interp) Call(c *Callable, args []*ast.Expr) *ast.Expr {
	if c.Prim != nil {
		if err := it.Env.Enter(); err != nil {
			return NilValue()
		}
		result := c.Prim.Fn(it, args)
		it.Env.Leave()
		if result == nil {
			return NilValue()
		}
		return result
	}
	return it.callUser(c.UserFn, args)
}

func (it *Interp) callUser(fn *ast.Function, args []*ast.Expr) *ast.Expr {
	// Tail-call reuse: only when the parent (about-to-become-current)
	// scope has no bindings yet (spec.md §4.E step 4, §5 "Scoped
	// acquisition").
	reuse := it.Env.Current().Vars.Len() == 0
	if !reuse {
		if err := it.Env.Enter(); err != nil {
			return NilValue()
		}
	} else {
		it.Env.Current().Vars.Clear()
	}

	for i, spec := range fn.Args {
		var val *ast.Expr
		switch {
		case i < len(args):
			val = args[i]
		case spec.Default != nil:
			val = it.Eval(spec.Default)
		default:
			val = NilValue()
		}
		it.Env.Define(spec.Name, EntryUser, Copy(val))
	}
	// Extra variadic arguments beyond the named parameters (MaxArgs ==
	// ast.MaxArgsInf) are accepted but bound to no name: sfFunction does
	// not turn a trailing "..." into a parameter, so the body cannot reach
	// them. Tap has no rest-parameter binding beyond the declared names.
	it.Env.Define("here", EntryUser, &ast.Expr{Kind: ast.KindFunction, Fun: fn})

	result := it.Eval(fn.Body)
	if !reuse {
		it.Env.Leave()
	}
	return result
}

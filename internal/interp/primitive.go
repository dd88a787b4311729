package interp

import "github.com/apptap/tap/internal/ast"

// PrimitiveFunc is a built-in's implementation. Unlike the original's
// `(args, n, out_payload, out_kind) -> ()` out-parameter contract, a Go
// primitive simply returns the result value directly (or nil, treated as
// the nil value) — Go has no need for caller-supplied output slots. args
// has already been evaluated/prepared by the dispatcher; a primitive must
// not mutate them (spec.md §4.G).
type PrimitiveFunc func(it *Interp, args []*ast.Expr) *ast.Expr

// Primitive is one registered overload of a built-in name (spec.md §4.G:
// "primitives are registered by name under multiple overloaded
// signatures"). ParamKinds[i] lists the acceptable kinds for parameter i;
// a nil/empty entry accepts anything. Only positions below MinArgs are
// checked during overload selection (spec.md §4.E step 2).
type Primitive struct {
	Name       string
	MinArgs    int
	MaxArgs    int // ast.MaxArgsInf for unbounded
	ParamKinds [][]ast.Kind
	Fn         PrimitiveFunc
}

func (p *Primitive) arity() (int, int) { return p.MinArgs, p.MaxArgs }

func (p *Primitive) accepts(i int, k ast.Kind) bool {
	if i >= len(p.ParamKinds) {
		return true
	}
	kinds := p.ParamKinds[i]
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if want == ast.AnyKind || want == k {
			return true
		}
	}
	return false
}

// Callable is a resolved dispatch candidate: either a primitive overload
// or a user-defined function value (spec.md §4.E).
type Callable struct {
	Prim   *Primitive
	UserFn *ast.Function
}

func (c *Callable) arity() (int, int) {
	if c.Prim != nil {
		return c.Prim.arity()
	}
	return c.UserFn.MinArgs, c.UserFn.MaxArgs
}

func (c *Callable) accepts(i int, k ast.Kind) bool {
	if c.Prim != nil {
		return c.Prim.accepts(i, k)
	}
	if i >= len(c.UserFn.Args) {
		return true
	}
	return c.UserFn.Args[i].Accepts(k)
}

func callableFromEntry(e *symEntry) *Callable {
	switch e.kind {
	case EntryPrimitive:
		if p, ok := e.value.(*Primitive); ok {
			return &Callable{Prim: p}
		}
	case EntryUser, EntryDirect:
		if v, ok := e.value.(*ast.Expr); ok && v.Kind == ast.KindFunction && v.Fun != nil {
			return &Callable{UserFn: v.Fun}
		}
	}
	return nil
}

func arityOK(c *Callable, n int) bool {
	min, max := c.arity()
	if n < min {
		return false
	}
	if max == ast.MaxArgsInf {
		return true
	}
	return n <= max
}

func kindsOK(c *Callable, args []*ast.Expr) bool {
	min, _ := c.arity()
	for i := 0; i < min && i < len(args); i++ {
		if !c.accepts(i, args[i].Kind) {
			return false
		}
	}
	return true
}

// RegisterPrimitive installs a built-in under EntryPrimitive at the root
// scope — primitives are never shadowed by scope cleanup (spec.md §3
// invariants).
func RegisterPrimitive(it *Interp, p *Primitive) {
	it.Env.DefineAtRoot(p.Name, EntryPrimitive, p)
}

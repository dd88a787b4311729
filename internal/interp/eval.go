package interp

import (
	"io"
	"os"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/errlog"
)

// Options configures an Interp (ambient addition: the original had no
// runtime-tunable knobs beyond compiled-in constants).
type Options struct {
	// MaxEnvironmentCount bounds how deep the environment stack may grow
	// (DESIGN.md "Environment stack backing storage"). 0 means unbounded.
	MaxEnvironmentCount int
	// DefaultDateFormat overrides ast.DefaultDateFormat for this
	// interpreter instance's `date.str` with no explicit format.
	DefaultDateFormat string
	// Out receives `print` output. Defaults to os.Stdout.
	Out io.Writer
	// PrintTrailingNewline appends a newline after each `print` call.
	PrintTrailingNewline bool
}

// Interp is one interpreter context: environment stack, composite type
// registry, and error log, grouped into a value per spec.md §5's note
// that implementations may carry these as fields of a passed context
// rather than process globals.
type Interp struct {
	Env     *EnvStack
	Types   *TypeRegistry
	Errors  *errlog.Log
	Out     io.Writer
	Options Options
}

// New creates an interpreter with an empty root scope and no primitives
// registered; call RegisterPrimitive (or a catalogue's registration
// entry point) to populate the root scope before evaluating anything.
func New(opts Options) *Interp {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Interp{
		Env:     NewEnvStack(opts.MaxEnvironmentCount),
		Types:   NewTypeRegistry(),
		Errors:  &errlog.Log{},
		Out:     opts.Out,
		Options: opts,
	}
}

// Eval is the entry point dispatching on e.Kind (spec.md §4.F).
func (it *Interp) Eval(e *ast.Expr) *ast.Expr {
	if e == nil {
		return NilValue()
	}
	switch {
	case e.Kind == ast.KindNil:
		return e
	case e.Kind == ast.KindContainerExp:
		return it.evalContainer(e)
	case e.Kind == ast.KindLazyExp:
		return it.Force(e)
	case e.Kind == ast.KindInt, e.Kind == ast.KindFloat, e.Kind == ast.KindDate, e.Kind == ast.KindType:
		return Copy(e)
	case e.Kind == ast.KindString:
		return it.evalString(e)
	case e.Kind == ast.KindFunction:
		return Copy(e)
	case e.Kind == ast.KindArray:
		return Copy(e)
	case e.Kind == ast.KindObject:
		return Copy(e)
	case e.Kind >= ast.CompositeBase:
		return Copy(e)
	default:
		return Copy(e)
	}
}

// Force implements lazy-value forcing (spec.md §4.F "Lazy forcing"): not
// memoised, re-evaluates the child expression every time.
func (it *Interp) Force(v *ast.Expr) *ast.Expr {
	if v == nil || v.Kind != ast.KindLazyExp {
		return v
	}
	if v.Child == nil {
		return NilValue()
	}
	return it.Eval(v.Child)
}

func (it *Interp) evalString(e *ast.Expr) *ast.Expr {
	switch e.StrFlag {
	case ast.StringVariable:
		name := varName(e.Str)
		_, entries := it.Env.Lookup(name)
		for _, ent := range entries {
			if v, ok := ent.value.(*ast.Expr); ok {
				return Copy(v)
			}
		}
		it.Errors.Record(errlog.UndefinedVar, name, e.Line, e.Column)
		return NilValue()
	default: // StringLiteral, StringSymbol
		return Copy(e)
	}
}

// prepArg prepares a raw argument expression for a function call
// (spec.md §4.F "Argument-expression evaluation" together with §4.E's
// "parser's lazy-container node is passed through unforced"): a literal
// lazy-expression written directly at the call site is passed through
// without forcing, so lazy-typed parameters actually receive an unforced
// lazy value; everything else goes through the ordinary evaluator, which
// already handles the array-expression-build and variable-lookup cases.
func (it *Interp) prepArg(raw *ast.Expr) *ast.Expr {
	if raw.Kind == ast.KindLazyExp {
		return raw
	}
	return it.Eval(raw)
}

// evalContainer implements container-expression evaluation: the
// array-expression-flagged form builds an array; otherwise a
// variable-reference head attempts a function application (spec.md §4.E);
// failing that, an evaluated head of kind function/array/object gets the
// matching specialised treatment from spec.md §4.F's table; anything else
// falls back to plain left-to-right sequence evaluation, returning the
// last result.
//
// evalContainer itself never wraps the whole dispatch in a new scope:
// per original_source/source/engine.c, an environment is pushed once per
// *call* (callPrimFun/callFun), not once per container node evaluated —
// argument evaluation runs in whichever scope is already current. Each
// branch below pushes its own single throwaway scope at the point of the
// actual call, matching callPrimFun's unconditional setEnvironment/
// resetEnvironment around every primitive (special forms included, since
// set/function/new-type/new/eval are plain insertPrimHash entries in
// the original, just ones this port implements with raw operand trees
// instead of pre-evaluated arguments). `if` is the exception: it gets no
// throwaway scope, because its conditions and branches stand in for
// arguments, which are evaluated in the caller's scope. Getting this wrong by wrapping the
// whole node breaks `set`'s "parent scope" semantics the moment it is
// nested inside `if` or another form: the write would land in a scope
// that is discarded the instant the enclosing form returns.
func (it *Interp) evalContainer(e *ast.Expr) *ast.Expr {
	if e.Flag == ast.FlagArrayExpr {
		return it.evalArrayLiteral(e)
	}

	child := e.Child
	if child == nil {
		return NilValue()
	}

	if child.Kind == ast.KindString && child.StrFlag == ast.StringVariable {
		name := varName(child.Str)
		if sf, ok := specialForms[name]; ok {
			if name == "if" {
				// if's conditions and branches are its operands: they run in
				// the caller's scope, so a `set` in the taken branch binds
				// where the enclosing code can read it.
				return sfIf(it, child.Next, e)
			}
			return it.callSpecialForm(sf, child.Next, e)
		}
		args := make([]*ast.Expr, 0, 4)
		for sib := child.Next; sib != nil; sib = sib.Next {
			args = append(args, it.prepArg(sib))
		}
		cand, ok := it.FindFunction(name, args)
		if !ok {
			it.Errors.Record(errlog.UndefinedFun, ast.Print(child), e.Line, e.Column)
			return NilValue()
		}
		return it.Call(cand, args)
	}

	head := it.Eval(child)
	switch head.Kind {
	case ast.KindFunction:
		args := make([]*ast.Expr, 0, 4)
		for sib := child.Next; sib != nil; sib = sib.Next {
			args = append(args, it.prepArg(sib))
		}
		return it.Call(&Callable{UserFn: head.Fun}, args)
	case ast.KindArray:
		idxExpr := child.Next
		if idxExpr == nil {
			return NilValue()
		}
		idx := it.Eval(idxExpr)
		if idx.Kind != ast.KindInt {
			it.Errors.Record(errlog.InvalidArg, "array index must be an integer", e.Line, e.Column)
			return NilValue()
		}
		el := head.Arr.At(int(idx.Int))
		if el == nil {
			it.Errors.Record(errlog.OutOfBounds, "array index out of bounds", e.Line, e.Column)
			return NilValue()
		}
		return Copy(el)
	case ast.KindObject:
		nameExpr := child.Next
		if nameExpr == nil {
			return NilValue()
		}
		nameVal := it.Eval(nameExpr)
		if nameVal.Kind != ast.KindString {
			it.Errors.Record(errlog.InvalidArg, "property name must be a string", e.Line, e.Column)
			return NilValue()
		}
		prop := head.Obj.Get(nameVal.Str)
		if prop == nil {
			it.Errors.Record(errlog.UndefinedProp, nameVal.Str, e.Line, e.Column)
			return NilValue()
		}
		return Copy(prop.Value)
	default:
		result := head
		for sib := child.Next; sib != nil; sib = sib.Next {
			result = it.Eval(sib)
		}
		return result
	}
}

// callSpecialForm pushes exactly one throwaway scope around a special
// form's body, mirroring callPrimFun's unconditional setEnvironment/
// resetEnvironment for the primitive each special form stands in for.
func (it *Interp) callSpecialForm(sf specialForm, argHead *ast.Expr, call *ast.Expr) *ast.Expr {
	if err := it.Env.Enter(); err != nil {
		return NilValue()
	}
	result := sf(it, argHead, call)
	it.Env.Leave()
	return result
}

func (it *Interp) evalArrayLiteral(e *ast.Expr) *ast.Expr {
	var elems []*ast.Expr
	for c := e.Child; c != nil; c = c.Next {
		elems = append(elems, it.Eval(c))
	}
	return ArrayValue(elems)
}

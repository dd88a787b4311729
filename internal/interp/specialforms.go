package interp

import (
	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/errlog"
)

// specialForm implements one head-position keyword that needs access to
// its operands' raw, unevaluated expression trees (spec.md §4.G "Notable
// primitives with cross-component semantics"). argHead is the first
// sibling after the head atom (nil if none); call is the enclosing
// container-expression node, for error positions.
type specialForm func(it *Interp, argHead *ast.Expr, call *ast.Expr) *ast.Expr

var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"set":      sfSet,
		"if":       sfIf,
		"function": sfFunction,
		"lambda":   sfFunction,
		"new-type": sfNewType,
		"new":      sfNew,
		"eval":     sfEval,
	}
}

// sfSet binds a name in the *parent* scope (spec.md §4.C, §4.G "set"): the
// name operand is never evaluated as a variable read, only its literal
// name is taken.
func sfSet(it *Interp, argHead *ast.Expr, call *ast.Expr) *ast.Expr {
	if argHead == nil || argHead.Next == nil {
		it.Errors.Record(errlog.InvalidNumArgs, "set requires a name and a value", call.Line, call.Column)
		return NilValue()
	}
	name := varName(argHead.Str)
	val := it.Eval(argHead.Next)
	it.Env.DefineAtParent(name, EntryUser, Copy(val))
	return Copy(val)
}

// sfIf is variadic: (condition branch)* [else]. A lazy condition is
// forced (plain Eval already forces); only the selected branch is forced
// (spec.md §4.G "if").
func sfIf(it *Interp, argHead *ast.Expr, call *ast.Expr) *ast.Expr {
	args := collectChain(argHead)
	i := 0
	for i+1 < len(args) {
		cond := it.Eval(args[i])
		if IsTruthy(cond) {
			return it.Eval(args[i+1])
		}
		i += 2
	}
	if i < len(args) {
		return it.Eval(args[i])
	}
	return NilValue()
}

// sfFunction builds a user-defined function value from a parameter list
// and a body (spec.md §4.G "function / lambda"; original_source/
// source/engine.c registers "function"/"lambda" as `prim_lFunction` on
// two TYPE_LAZ operands, i.e. both the parameter list and the body are
// written as `[...]` lazy expressions). A trailing "..." parameter sets
// maxargs to unbounded; a parameter written as a `{name type type...}`
// array-expression permits multiple kinds.
func sfFunction(it *Interp, argHead *ast.Expr, call *ast.Expr) *ast.Expr {
	raw := collectChain(argHead)
	if len(raw) != 2 {
		it.Errors.Record(errlog.InvalidNumArgs, "function requires a parameter list and a body", call.Line, call.Column)
		return NilValue()
	}
	paramsNode, body := raw[0], raw[1]
	var paramExprs []*ast.Expr
	if paramsNode.Kind == ast.KindLazyExp {
		paramExprs = collectChain(paramsNode.Child)
	} else {
		paramExprs = []*ast.Expr{paramsNode}
	}

	fn := &ast.Function{Body: body}
	for _, p := range paramExprs {
		if p.Kind == ast.KindString && p.StrFlag == ast.StringVariable && varName(p.Str) == "..." {
			fn.MaxArgs = ast.MaxArgsInf
			continue
		}
		spec := &ast.ArgSpec{}
		if p.Kind == ast.KindContainerExp && p.Flag == ast.FlagArrayExpr {
			items := collectChain(p.Child)
			if len(items) > 0 {
				spec.Name = varName(items[0].Str)
			}
			for _, k := range items[1:] {
				spec.Kinds = append(spec.Kinds, kindName(varName(k.Str)))
			}
		} else {
			spec.Name = varName(p.Str)
		}
		fn.Args = append(fn.Args, spec)
		fn.MinArgs++
	}
	if fn.MaxArgs != ast.MaxArgsInf {
		fn.MaxArgs = fn.MinArgs
	}
	return &ast.Expr{Kind: ast.KindFunction, Line: call.Line, Column: call.Column, Fun: fn}
}

// sfNewType defines a composite type from a lazy body of `(required ...)`,
// `(inherits Name)`, and `(property privacy range [types…] name default)`
// clauses (spec.md §4.G "new-type", §4.H; spec.md §8 scenario 5's
// `(property public local [int] "x" 0)`; original_source/primitives/
// prim_str.c prim_sNewtype, which reads the two attribute tokens in
// either order against all four keywords, then a type-list expression,
// then the property name, then its default-value expression).
func sfNewType(it *Interp, argHead *ast.Expr, call *ast.Expr) *ast.Expr {
	raw := collectChain(argHead)
	if len(raw) < 2 {
		it.Errors.Record(errlog.InvalidNumArgs, "new-type requires a name and a body", call.Line, call.Column)
		return NilValue()
	}
	name := varName(raw[0].Str)
	bodyExpr := raw[1]
	clauses := bodyExpr
	if bodyExpr.Kind == ast.KindLazyExp {
		clauses = bodyExpr.Child
	}

	var required []string
	var inheritsName string
	var template, templTail *ast.Property
	for c := clauses; c != nil; c = c.Next {
		if c.Kind != ast.KindContainerExp || c.Child == nil {
			continue
		}
		items := collectChain(c.Child)
		if len(items) == 0 {
			continue
		}
		switch varName(items[0].Str) {
		case "required":
			for _, item := range items[1:] {
				required = append(required, varName(item.Str))
			}
		case "inherits":
			if len(items) > 1 {
				inheritsName = varName(items[1].Str)
			}
		case "property":
			if len(items) < 5 {
				it.Errors.Record(errlog.InvalidArg, "property requires privacy, range, a type list, a name, and a default", c.Line, c.Column)
				continue
			}
			privacy := ast.Public
			rng := ast.RangeGlobal
			for _, attr := range items[1:3] {
				switch varName(attr.Str) {
				case "public":
					privacy = ast.Public
				case "private":
					privacy = ast.Private
				case "global":
					rng = ast.RangeGlobal
				case "local":
					rng = ast.RangeLocal
				default:
					it.Errors.Record(errlog.InvalidArg, "unknown property attribute "+varName(attr.Str), c.Line, c.Column)
				}
			}
			np := &ast.Property{Name: varName(items[4].Str), Privacy: privacy, Range: rng}
			for _, k := range propTypeItems(items[3]) {
				np.Types = append(np.Types, kindName(varName(k.Str)))
			}
			if len(items) > 5 {
				np.Value = items[5]
			}
			if template == nil {
				template = np
			} else {
				templTail.Next = np
			}
			templTail = np
		}
	}

	var parent *CompositeType
	if inheritsName != "" {
		parent, _ = it.Types.Lookup(inheritsName)
		if parent == nil {
			it.Errors.Record(errlog.UndefinedTyp, inheritsName, call.Line, call.Column)
		}
	}
	ct := it.Types.Define(name, required, parent, template)
	it.Env.Current().Types = append(it.Env.Current().Types, ct)
	typeVal := &ast.Expr{Kind: ast.KindType, Line: call.Line, Column: call.Column, TypeID: ct.ID, Str: name}
	it.Env.DefineAtParent(name, EntryUser, Copy(typeVal))
	return Copy(typeVal)
}

// sfNew constructs an object of a previously declared composite type
// (spec.md §4.G "new", §4.H "validate_instance"; spec.md §8 scenario 5's
// `(obj Point [("x" 3) ("y" 4)])`): `(new TypeName [(propname val)…])`,
// the second operand a lazy body of `(name value)` sub-expressions
// (original_source/primitives/prim_typ.c prim_tNew walks args[1]'s lazy
// expression list the same way). The body is optional: a type with no
// required properties may be constructed with none supplied.
func sfNew(it *Interp, argHead *ast.Expr, call *ast.Expr) *ast.Expr {
	raw := collectChain(argHead)
	if len(raw) == 0 {
		it.Errors.Record(errlog.InvalidNumArgs, "new requires a type", call.Line, call.Column)
		return NilValue()
	}
	typeVal := it.Eval(raw[0])
	var body *ast.Expr
	if len(raw) > 1 {
		body = raw[1]
	}
	return it.ConstructFromType(typeVal, body, call.Line, call.Column)
}

// ConstructFromType builds an object of typeVal's composite type from a
// lazy body of `(propname value)` sub-expressions, shared by sfNew and
// the "obj"/"object" TYPE_TYP-receiver constructor overloads registered
// alongside the object-copy overload in builtins/types.go and
// builtins/objects.go (the original aliases all three names onto
// prim_tNew; overload resolution distinguishes them from the object-copy
// "obj"/"object" by receiver kind and arity, so there is no ambiguity).
func (it *Interp) ConstructFromType(typeVal *ast.Expr, body *ast.Expr, line, col int) *ast.Expr {
	if typeVal.Kind != ast.KindType {
		it.Errors.Record(errlog.UndefinedTyp, ast.Print(typeVal), line, col)
		return NilValue()
	}
	ct, ok := it.Types.ByID(typeVal.TypeID)
	if !ok {
		it.Errors.Record(errlog.UndefinedTyp, typeVal.Str, line, col)
		return NilValue()
	}

	clauses := body
	if body != nil && body.Kind == ast.KindLazyExp {
		clauses = body.Child
	}
	values := map[string]*ast.Expr{}
	for c := clauses; c != nil; c = c.Next {
		if c.Kind != ast.KindContainerExp || c.Child == nil {
			continue
		}
		pair := collectChain(c.Child)
		if len(pair) < 2 {
			continue
		}
		values[varName(pair[0].Str)] = it.Eval(pair[1])
	}
	defaults := map[string]*ast.Expr{}
	for _, tmpl := range ct.templateChain() {
		if tmpl.Value != nil {
			defaults[tmpl.Name] = it.Eval(tmpl.Value)
		}
	}
	obj, err := ct.Instantiate(values, defaults)
	if err != nil {
		it.Errors.Record(errlog.InvalidPropTyp, err.Error(), line, col)
		return NilValue()
	}
	return &ast.Expr{Kind: ast.KindObject, Line: line, Column: col, Obj: obj}
}

// propTypeItems extracts a property clause's type-list operand: a lazy
// `[...]` expression, an array `{...}` expression, or (tolerating a
// single bare type name written without brackets) the node itself.
func propTypeItems(node *ast.Expr) []*ast.Expr {
	switch {
	case node.Kind == ast.KindLazyExp:
		return collectChain(node.Child)
	case node.Kind == ast.KindContainerExp && node.Flag == ast.FlagArrayExpr:
		return collectChain(node.Child)
	default:
		return []*ast.Expr{node}
	}
}

// sfEval forces a lazy value (spec.md §4.G "eval"). Unlike an ordinary
// argument position, the operand here is evaluated by the normal
// evaluator first (so a variable holding a still-unforced lazy value is
// resolved to it), then force is applied explicitly: evaluating a literal
// [...] operand already forces it, so the extra Force is only observable
// when the operand is a variable/array/object access that yields a lazy
// value without forcing it itself.
func sfEval(it *Interp, argHead *ast.Expr, call *ast.Expr) *ast.Expr {
	if argHead == nil {
		return NilValue()
	}
	return it.Force(it.Eval(argHead))
}

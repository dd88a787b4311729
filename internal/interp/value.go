package interp

import "github.com/apptap/tap/internal/ast"

// Value construction and copying (spec.md §4.A). A Tap value at runtime is
// an *ast.Expr with Next always nil — Next is a parse-time sibling link
// only, never a runtime property of a value.
//
// The original's New/Copy/CopyOne/Free quartet existed to manage manual
// reference counting; under Go's GC, Free has no work to do and is
// omitted. Copy/CopyOne remain because Tap has value semantics: assigning
// or passing a value must not let two bindings alias the same mutable
// Array/Object payload (spec.md §3 "Values are copied, not aliased, on
// assignment and argument passing").

// NilValue returns a fresh nil value.
func NilValue() *ast.Expr { return &ast.Expr{Kind: ast.KindNil} }

// IntValue returns a fresh integer value.
func IntValue(n int64) *ast.Expr { return &ast.Expr{Kind: ast.KindInt, Int: n} }

// FloatValue returns a fresh float value.
func FloatValue(f float64) *ast.Expr { return &ast.Expr{Kind: ast.KindFloat, Float: f} }

// StringValue returns a fresh literal string value.
func StringValue(s string) *ast.Expr {
	return &ast.Expr{Kind: ast.KindString, StrFlag: ast.StringLiteral, Str: s}
}

// DateValue returns a fresh date value (seconds since epoch).
func DateValue(unix int64) *ast.Expr { return &ast.Expr{Kind: ast.KindDate, Unix: unix} }

// ArrayValue wraps elems (already Copy'd by the caller if needed) as a
// fresh array value spanning the whole slice.
func ArrayValue(elems []*ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.KindArray, Arr: &ast.Array{Elems: elems, Start: 0, End: len(elems) - 1}}
}

// IsTruthy implements spec.md §4.F's truthiness rule: nil is false, the
// integer 0 is false, everything else is true.
func IsTruthy(v *ast.Expr) bool {
	if v == nil || v.Kind == ast.KindNil {
		return false
	}
	if v.Kind == ast.KindInt && v.Int == 0 {
		return false
	}
	return true
}

// CopyOne duplicates v's own payload without recursing into children:
// container/lazy expressions keep sharing their Child subtree (those are
// code, not data, and are never mutated in place), while Array and Object
// payloads — Tap's two mutable composite value kinds — get a fresh
// top-level copy so the clone's mutations cannot bleed into the original
// (spec.md §4.A "CopyOne").
func CopyOne(v *ast.Expr) *ast.Expr {
	if v == nil {
		return nil
	}
	clone := *v
	clone.Next = nil
	switch v.Kind {
	case ast.KindArray:
		clone.Arr = copyArrayShallow(v.Arr)
	case ast.KindObject:
		clone.Obj = copyObjectShallow(v.Obj)
	}
	return &clone
}

// Copy deep-copies v: Array elements and Object property values are
// themselves Copy'd, not just re-sliced/re-linked (spec.md §4.A "Copy").
// Used for assignment and argument passing, where nested mutation must
// not be observable through the other binding.
func Copy(v *ast.Expr) *ast.Expr {
	if v == nil {
		return nil
	}
	clone := *v
	clone.Next = nil
	switch v.Kind {
	case ast.KindArray:
		if v.Arr != nil {
			elems := make([]*ast.Expr, v.Arr.Len())
			for i := range elems {
				elems[i] = Copy(v.Arr.At(i))
			}
			clone.Arr = &ast.Array{Elems: elems, Start: 0, End: len(elems) - 1}
		}
	case ast.KindObject:
		clone.Obj = copyObjectDeep(v.Obj)
	}
	return &clone
}

func copyArrayShallow(a *ast.Array) *ast.Array {
	if a == nil {
		return nil
	}
	elems := make([]*ast.Expr, len(a.Elems))
	copy(elems, a.Elems)
	return &ast.Array{Elems: elems, Start: a.Start, End: a.End}
}

func copyObjectShallow(o *ast.Object) *ast.Object {
	if o == nil {
		return nil
	}
	clone := &ast.Object{TypeID: o.TypeID}
	var tail *ast.Property
	for p := o.Props; p != nil; p = p.Next {
		np := *p
		np.Next = nil
		if clone.Props == nil {
			clone.Props = &np
		} else {
			tail.Next = &np
		}
		tail = &np
	}
	return clone
}

func copyObjectDeep(o *ast.Object) *ast.Object {
	if o == nil {
		return nil
	}
	clone := &ast.Object{TypeID: o.TypeID}
	var tail *ast.Property
	for p := o.Props; p != nil; p = p.Next {
		np := &ast.Property{Name: p.Name, Types: p.Types, Privacy: p.Privacy, Range: p.Range, Value: Copy(p.Value)}
		if clone.Props == nil {
			clone.Props = np
		} else {
			tail.Next = np
		}
		tail = np
	}
	return clone
}

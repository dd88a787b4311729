package interp

import (
	"fmt"

	"github.com/apptap/tap/internal/ast"
)

// CompositeType is a user-declared object type: an id, its required
// property names, an optional parent to inherit a property template from,
// and the property template itself (spec.md §4.H "new-type").
type CompositeType struct {
	ID       ast.Kind
	Name     string
	Required map[string]bool
	Inherits *CompositeType
	Template *ast.Property // owned linked list of template Property nodes
}

// TypeRegistry allocates composite type ids starting at ast.CompositeBase
// (spec.md §3, matching the original's TYPE_COMP_START) and resolves
// type names to their definitions.
type TypeRegistry struct {
	byName map[string]*CompositeType
	byID   map[ast.Kind]*CompositeType
	nextID ast.Kind
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byName: make(map[string]*CompositeType),
		byID:   make(map[ast.Kind]*CompositeType),
		nextID: ast.CompositeBase,
	}
}

// Lookup resolves a composite type by name.
func (r *TypeRegistry) Lookup(name string) (*CompositeType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// ByID resolves a composite type by its allocated Kind.
func (r *TypeRegistry) ByID(id ast.Kind) (*CompositeType, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Define registers a new composite type. required lists property names
// that Instantiate must reject a construction missing; inheritsFrom (may
// be nil) is the parent type whose template is prepended to this type's
// own. Redefining an existing name replaces it and keeps its original id
// rather than erroring the way original_source/primitives/prim_str.c's
// prim_sNewtype does ("lookupHash(env->variables, name) == NULL" guards
// the whole definition) — spec.md does not specify redefinition, and
// overwrite-in-place matches how `set` already treats re-binding a name.
func (r *TypeRegistry) Define(name string, required []string, inheritsFrom *CompositeType, template *ast.Property) *CompositeType {
	ct := &CompositeType{
		ID:       r.nextID,
		Name:     name,
		Required: make(map[string]bool, len(required)),
		Inherits: inheritsFrom,
		Template: template,
	}
	for _, n := range required {
		ct.Required[n] = true
	}
	if existing, ok := r.byName[name]; ok {
		ct.ID = existing.ID
	} else {
		r.nextID++
	}
	r.byName[name] = ct
	r.byID[ct.ID] = ct
	return ct
}

// templateChain walks Inherits from root to ct, yielding the combined
// property template (parent properties first, so a child's own template
// entries shadow the parent's on name collision).
func (ct *CompositeType) templateChain() []*ast.Property {
	var chain []*CompositeType
	for t := ct; t != nil; t = t.Inherits {
		chain = append(chain, t)
	}
	var props []*ast.Property
	for i := len(chain) - 1; i >= 0; i-- {
		for p := chain[i].Template; p != nil; p = p.Next {
			props = append(props, p)
		}
	}
	return props
}

// Instantiate builds a fresh Object of this type from the supplied
// property values (spec.md §4.H "new"). values maps property name to its
// initializing expression; properties absent from values fall back to
// the template's default-value expression (evaluated by the caller before
// calling Instantiate, since evaluation needs the environment stack this
// package's types.go does not hold). Instantiate itself only validates
// requiredness and kind-acceptance and assembles the Object.
func (ct *CompositeType) Instantiate(values map[string]*ast.Expr, defaults map[string]*ast.Expr) (*ast.Object, error) {
	chain := ct.templateChain()
	latest := make(map[string]*ast.Property, len(chain))
	for _, tmpl := range chain {
		latest[tmpl.Name] = tmpl // later (child) entries overwrite the parent's
	}
	obj := &ast.Object{TypeID: ct.ID}
	var tail *ast.Property
	seen := make(map[string]bool)
	for _, tmpl := range chain {
		if seen[tmpl.Name] {
			continue // name already placed, using the child's entry
		}
		seen[tmpl.Name] = true
		tmpl = latest[tmpl.Name]
		val, has := values[tmpl.Name]
		if !has {
			val = defaults[tmpl.Name]
		}
		if val == nil && ct.Required[tmpl.Name] {
			return nil, fmt.Errorf("missing required property %q for type %q", tmpl.Name, ct.Name)
		}
		if val != nil && !tmpl.AcceptsKind(val.Kind) {
			return nil, fmt.Errorf("property %q of type %q does not accept kind %s", tmpl.Name, ct.Name, val.Kind)
		}
		np := &ast.Property{Name: tmpl.Name, Types: tmpl.Types, Privacy: tmpl.Privacy, Range: tmpl.Range, Value: val}
		if obj.Props == nil {
			obj.Props = np
		} else {
			tail.Next = np
		}
		tail = np
	}
	// Properties supplied that are not in any template are still accepted
	// as untyped (AnyKind) additions: original_source/primitives/
	// prim_typ.c's prim_tNew falls back to newProperty(propname, NULL,
	// PROP_PRIVACY_PRIVATE, PROP_RANGE_LOCAL, propval) whenever a supplied
	// name has no matching template entry, rather than rejecting it.
	for name, val := range values {
		if seen[name] {
			continue
		}
		np := &ast.Property{Name: name, Types: []ast.Kind{ast.AnyKind}, Value: val}
		if obj.Props == nil {
			obj.Props = np
		} else {
			tail.Next = np
		}
		tail = np
	}
	return obj, nil
}

package interp

import "github.com/apptap/tap/internal/ast"

// varName strips the leading ':' variable-reference sigil a parsed
// identifier may carry (spec.md §4.D rule 2: "a ':' at the start makes a
// variable reference"). Plain identifiers that fell through to
// variable-reference status without a leading colon are returned as-is.
func varName(s string) string {
	if len(s) > 0 && s[0] == ':' {
		return s[1:]
	}
	return s
}

// collectChain walks a Next-linked sibling chain into a slice, starting
// at head (head may be nil, yielding an empty slice).
func collectChain(head *ast.Expr) []*ast.Expr {
	var out []*ast.Expr
	for e := head; e != nil; e = e.Next {
		out = append(out, e)
	}
	return out
}

// kindName maps Tap's type-name vocabulary (used in `function`/`new-type`
// parameter and property declarations) to a Kind. An unrecognized name
// falls back to ast.AnyKind rather than erroring, matching spec.md §4.H's
// "the template's type list is unknown, meaning any" fallback.
func kindName(name string) ast.Kind {
	switch name {
	case "nil":
		return ast.KindNil
	case "expression":
		return ast.KindContainerExp
	case "lazy-expression", "lazy":
		return ast.KindLazyExp
	case "int", "integer":
		return ast.KindInt
	case "float":
		return ast.KindFloat
	case "string":
		return ast.KindString
	case "array":
		return ast.KindArray
	case "date":
		return ast.KindDate
	case "object":
		return ast.KindObject
	case "function":
		return ast.KindFunction
	case "type":
		return ast.KindType
	default:
		return ast.AnyKind
	}
}

package builtins

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
)

// registerCasing installs upper-case/lower-case/sentence-case/title-case
// (prim_sUpper/prim_sLower/prim_sSentence/prim_sTitle), backed by
// golang.org/x/text/cases rather than a byte-wise ASCII loop so casing
// rules extend past ASCII the way the rest of the corpus's text-handling
// code does.
func registerCasing(it *interp.Interp, anyStr [][]ast.Kind) {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	reg(it, "upper-case", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(upper.String(args[0].Str))
	})
	reg(it, "lower-case", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(lower.String(args[0].Str))
	})
	reg(it, "sentence-case", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		s := lower.String(args[0].Str)
		if s == "" {
			return interp.StringValue(s)
		}
		return interp.StringValue(upper.String(s[:1]) + s[1:])
	})
	reg(it, "title-case", 1, 1, anyStr, func(it *interp.Interp, args []*ast.Expr) *ast.Expr {
		return interp.StringValue(title.String(strings.ToLower(args[0].Str)))
	})
}

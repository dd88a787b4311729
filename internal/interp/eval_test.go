package interp_test

import (
	"strings"
	"testing"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/errlog"
	"github.com/apptap/tap/internal/interp"
	"github.com/apptap/tap/internal/interp/builtins"
	"github.com/apptap/tap/internal/lexer"
	"github.com/apptap/tap/internal/parser"
)

// newInterp builds a fresh root-scope interpreter with the full primitive
// catalogue registered, matching pkg/tap.New's wiring without the config
// layer in the way of test setup.
func newInterp(t *testing.T) *interp.Interp {
	t.Helper()
	it := interp.New(interp.Options{MaxEnvironmentCount: 4096})
	builtins.RegisterAll(it)
	return it
}

// run evaluates every top-level sibling in source and returns the last
// result (spec.md §8's scenarios are all judged by their final value).
func run(t *testing.T, it *interp.Interp, source string) *ast.Expr {
	t.Helper()
	l := lexer.New(source)
	p := parser.New(l, it.Errors)
	head := p.Parse()

	last := interp.NilValue()
	for e := head; e != nil; e = e.Next {
		last = it.Eval(e)
	}
	return last
}

// --- spec.md §8 concrete end-to-end scenarios ---

func TestScenarioArithmeticSum(t *testing.T) {
	it := newInterp(t)
	got := run(t, it, "(+ 1 2 3)")
	if got.Kind != ast.KindInt || got.Int != 6 {
		t.Fatalf("got %s, want 6", ast.Print(got))
	}
}

func TestScenarioIfBranch(t *testing.T) {
	it := newInterp(t)
	got := run(t, it, `(if (> 5 3) "yes" "no")`)
	if ast.Print(got) != "yes" {
		t.Fatalf("got %s, want yes", ast.Print(got))
	}
}

func TestScenarioLambdaApplication(t *testing.T) {
	it := newInterp(t)
	got := run(t, it, "((function [x] [(* x x)]) 7)")
	if got.Kind != ast.KindInt || got.Int != 49 {
		t.Fatalf("got %s, want 49", ast.Print(got))
	}
}

func TestScenarioSetThenRead(t *testing.T) {
	it := newInterp(t)
	got := run(t, it, `(set "y" 10) (+ y 5)`)
	if got.Kind != ast.KindInt || got.Int != 15 {
		t.Fatalf("got %s, want 15", ast.Print(got))
	}
}

func TestScenarioObjectConstructionAndAccess(t *testing.T) {
	it := newInterp(t)
	// spec.md §8 scenario 5, verbatim.
	run(t, it, `(new-type "Point" [(property public local [int] "x" 0) (property public local [int] "y" 0) (required "x" "y")])`)
	obj := run(t, it, `(obj Point [("x" 3) ("y" 4)])`)
	if obj.Kind != ast.KindObject {
		t.Fatalf("got kind %v, want object", obj.Kind)
	}
	if ast.Print(obj) != "[object]" {
		t.Fatalf("got %s, want [object]", ast.Print(obj))
	}
	if it.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", it.Errors.Entries())
	}

	x := run(t, it, `((obj Point [("x" 3) ("y" 4)]) "x")`)
	if x.Kind != ast.KindInt || x.Int != 3 {
		t.Fatalf("got %s, want 3", ast.Print(x))
	}
}

func TestScenarioUnclosedParen(t *testing.T) {
	it := newInterp(t)
	got := run(t, it, "(")
	if ast.Print(got) != "[nil]" {
		t.Fatalf("got %s, want [nil]", ast.Print(got))
	}
	if it.Errors.Len() == 0 {
		t.Fatalf("expected an error to be recorded")
	}
	found := false
	for _, e := range it.Errors.Entries() {
		if e.Code == errlog.UnclosedParen {
			found = true
		}
	}
	if !found {
		t.Fatalf("want an unclosed-paren error, got %v", it.Errors.Entries())
	}
	if !strings.Contains(it.Errors.Report(), errlog.UnclosedParen.Label()) {
		t.Fatalf("report missing unclosed-paren label: %s", it.Errors.Report())
	}
}

// --- spec.md §8 invariants a test suite must verify ---

func TestInvariantParsePrintRoundTripAtoms(t *testing.T) {
	cases := map[string]string{"42": "42", `"hello"`: "hello"}
	for src, want := range cases {
		it := newInterp(t)
		got := run(t, it, src)
		if ast.Print(got) != want {
			t.Errorf("round-trip %q: got %q, want %q", src, ast.Print(got), want)
		}
	}
}

func TestInvariantBracketBalance(t *testing.T) {
	l := &errlog.Log{}
	parser.Parse("(+ 1 (* 2 3))", l)
	if l.Len() != 0 {
		t.Fatalf("balanced source reported errors: %v", l.Entries())
	}
	l2 := &errlog.Log{}
	parser.Parse("(+ 1 (* 2 3)", l2)
	if l2.Len() != 1 {
		t.Fatalf("unbalanced source: got %d errors, want 1", l2.Len())
	}
}

func TestInvariantOverloadDispatch(t *testing.T) {
	it := newInterp(t)
	if got := run(t, it, "(+ 1 2)"); got.Kind != ast.KindInt || got.Int != 3 {
		t.Errorf("int overload: got %s, want 3", ast.Print(got))
	}
	it2 := newInterp(t)
	if got := run(t, it2, "(+ 1.0 2)"); got.Kind != ast.KindFloat || got.Float != 3.0 {
		t.Errorf("float overload: got %s, want 3.0", ast.Print(got))
	}
	it3 := newInterp(t)
	if got := run(t, it3, `(+ "a" "b")`); got.Kind != ast.KindString || got.Str != "ab" {
		t.Errorf("string overload: got %s, want ab", ast.Print(got))
	}
}

func TestInvariantScopeDisciplineAfterEval(t *testing.T) {
	it := newInterp(t)
	run(t, it, `(set "y" 10) (+ ((function [x] [(* x x)]) y) 1)`)
	if it.Env.Depth() != 1 {
		t.Fatalf("scope stack depth after eval = %d, want 1 (root only)", it.Env.Depth())
	}
	if len(it.Env.Root().Vars.Lookup("y")) == 0 {
		t.Fatalf("root scope lost its user binding for y")
	}
}

func TestInvariantLazyBranchNotEvaluated(t *testing.T) {
	it := newInterp(t)
	run(t, it, `(set "hit" 0)`)
	run(t, it, `(if (> 1 2) (set "hit" 1) (set "hit" 2))`)
	got := run(t, it, "hit")
	if got.Int != 2 {
		t.Fatalf("untaken branch ran or wrong branch selected: hit = %d", got.Int)
	}
}

func TestInvariantTailCallBoundedScopeGrowth(t *testing.T) {
	// A self-recursive tail call must not exhaust the environment-stack
	// budget: with MaxEnvironmentCount generous but finite, 50 levels of
	// recursion must complete without an overflow error.
	it := newInterp(t)
	run(t, it, `(set "countdown" (function [n] [(if (> n 0) (here (- n 1)) 0)]))`)
	got := run(t, it, "(countdown 50)")
	if got.Kind != ast.KindInt || got.Int != 0 {
		t.Fatalf("countdown result = %s, want 0", ast.Print(got))
	}
	if it.Errors.Len() != 0 {
		t.Fatalf("tail recursion recorded errors: %v", it.Errors.Entries())
	}
}

func TestInvariantArrayOutOfBounds(t *testing.T) {
	it := newInterp(t)
	got := run(t, it, "({1 2 3} 9)")
	if ast.Print(got) != "[nil]" {
		t.Fatalf("out-of-bounds access returned %s, want [nil]", ast.Print(got))
	}
	found := false
	for _, e := range it.Errors.Entries() {
		if e.Code == errlog.OutOfBounds {
			found = true
		}
	}
	if !found {
		t.Fatalf("want an out-of-bounds error, got %v", it.Errors.Entries())
	}
}

func TestInvariantSymbolEquality(t *testing.T) {
	it := newInterp(t)
	truthy := run(t, it, "(== 'foo 'foo)")
	if !interp.IsTruthy(truthy) {
		t.Errorf("same symbol text should compare equal: %s", ast.Print(truthy))
	}
	falsy := run(t, it, "(== 'foo 'bar)")
	if interp.IsTruthy(falsy) {
		t.Errorf("distinct symbol text should not compare equal: %s", ast.Print(falsy))
	}
	sym := run(t, it, "'foo")
	if sym.Kind != ast.KindInt {
		t.Errorf("symbols must parse to integers, got kind %v", sym.Kind)
	}
}

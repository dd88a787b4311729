package parser

import (
	"testing"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/errlog"
	"github.com/apptap/tap/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Expr, *errlog.Log) {
	t.Helper()
	log := &errlog.Log{}
	head := Parse(src, log)
	return head, log
}

func TestParseIntegerAtom(t *testing.T) {
	head, log := parse(t, "42")
	if log.Len() != 0 {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if head.Kind != ast.KindInt || head.Int != 42 {
		t.Fatalf("got %+v, want integer 42", head)
	}
}

func TestParseFloatAtom(t *testing.T) {
	head, _ := parse(t, "3.5")
	if head.Kind != ast.KindFloat || head.Float != 3.5 {
		t.Fatalf("got %+v, want float 3.5", head)
	}
}

func TestParseVariableReference(t *testing.T) {
	head, _ := parse(t, ":x")
	if head.Kind != ast.KindString || head.StrFlag != ast.StringVariable || head.Str != ":x" {
		t.Fatalf("got %+v, want variable reference :x", head)
	}
}

func TestParseContainerExpression(t *testing.T) {
	head, log := parse(t, "(+ 1 2)")
	if log.Len() != 0 {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if head.Kind != ast.KindContainerExp {
		t.Fatalf("got kind %v, want container expression", head.Kind)
	}
	if head.Child == nil || head.Child.Str != "+" {
		t.Fatalf("got child %+v, want head symbol '+'", head.Child)
	}
}

func TestParseLazyAndArrayExpressions(t *testing.T) {
	head, _ := parse(t, "[1] {1 2 3}")
	if head.Kind != ast.KindLazyExp {
		t.Fatalf("first expr kind = %v, want lazy", head.Kind)
	}
	arr := head.Next
	if arr == nil || arr.Kind != ast.KindContainerExp || arr.Flag != ast.FlagArrayExpr {
		t.Fatalf("second expr = %+v, want array-flagged container", arr)
	}
}

func TestParseEmptyBracketsProduceNil(t *testing.T) {
	head, _ := parse(t, "()")
	if head.Kind != ast.KindNil {
		t.Fatalf("got kind %v, want nil", head.Kind)
	}
}

func TestParseUnclosedParenRecordsError(t *testing.T) {
	_, log := parse(t, "(+ 1 2")
	if log.Len() != 1 {
		t.Fatalf("got %d errors, want 1", log.Len())
	}
	if log.Entries()[0].Code != errlog.UnclosedParen {
		t.Fatalf("got code %v, want UnclosedParen", log.Entries()[0].Code)
	}
}

func TestParseSymbolHashesConsistently(t *testing.T) {
	a, _ := parse(t, "'foo")
	b, _ := parse(t, "'foo")
	c, _ := parse(t, "'bar")
	if a.Kind != ast.KindInt || b.Kind != ast.KindInt || c.Kind != ast.KindInt {
		t.Fatalf("symbols must parse to integers: %+v %+v %+v", a, b, c)
	}
	if a.Int != b.Int {
		t.Errorf("same symbol text hashed differently: %d vs %d", a.Int, b.Int)
	}
	if a.Int == c.Int {
		t.Errorf("distinct symbol text hashed identically: %d", a.Int)
	}
}

func TestParseSequenceChaining(t *testing.T) {
	head, _ := parse(t, "1 2 3")
	var vals []int64
	for e := head; e != nil; e = e.Next {
		vals = append(vals, e.Int)
	}
	want := []int64{1, 2, 3}
	if len(vals) != len(want) {
		t.Fatalf("got %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("value %d: got %d, want %d", i, vals[i], want[i])
		}
	}
}

func TestParseMismatchedCloserStillBalances(t *testing.T) {
	// Spec.md §4.D rule 4: any closer closes the innermost opener; only
	// overall open/close balance is checked, not bracket-type agreement.
	_, log := parse(t, "(1 2]")
	if log.Len() != 0 {
		t.Fatalf("unexpected errors for balanced-but-mismatched brackets: %v", log.Entries())
	}
}

func TestLexerErrorsSurfaceThroughParser(t *testing.T) {
	log := &errlog.Log{}
	l := lexer.New(`"unclosed`)
	New(l, log)
	if log.Len() != 1 {
		t.Fatalf("got %d errors, want 1", log.Len())
	}
}

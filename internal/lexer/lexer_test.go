package lexer

import (
	"testing"

	"github.com/apptap/tap/internal/token"
)

func collectKinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	l := New(src)
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return kinds
}

func TestBracketKinds(t *testing.T) {
	kinds := collectKinds(t, "( [ { } ] )")
	want := []token.Kind{
		token.LParen, token.LBracket, token.LBrace,
		token.RBrace, token.RBracket, token.RParen, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Kind != token.String {
		t.Fatalf("got kind %v, want String", tok.Kind)
	}
	if tok.Literal != "hello world" {
		t.Errorf("got literal %q, want %q", tok.Literal, "hello world")
	}
}

func TestUnclosedStringRecordsError(t *testing.T) {
	l := New(`"oops`)
	l.NextToken()
	if len(l.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(l.Errors()))
	}
}

func TestSymbolMarker(t *testing.T) {
	l := New("'foo")
	tok := l.NextToken()
	if tok.Kind != token.Symbol {
		t.Fatalf("got kind %v, want Symbol", tok.Kind)
	}
	if tok.Literal != "foo" {
		t.Errorf("got literal %q, want %q", tok.Literal, "foo")
	}
}

func TestCommentSkipped(t *testing.T) {
	kinds := collectKinds(t, "; a comment\n42")
	if len(kinds) != 2 || kinds[0] != token.Ident || kinds[1] != token.EOF {
		t.Fatalf("got %v, want [Ident EOF]", kinds)
	}
}

func TestIdentBoundedByDelimiters(t *testing.T) {
	l := New("(+ 1 2)")
	var lits []string
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Ident {
			lits = append(lits, tok.Literal)
		}
	}
	want := []string{"+", "1", "2"}
	if len(lits) != len(want) {
		t.Fatalf("got %v, want %v", lits, want)
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Errorf("ident %d: got %q, want %q", i, lits[i], want[i])
		}
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("a\nb")
	first := l.NextToken()
	second := l.NextToken()
	if first.Pos.Line != 1 {
		t.Errorf("first token line = %d, want 1", first.Pos.Line)
	}
	if second.Pos.Line != 2 {
		t.Errorf("second token line = %d, want 2", second.Pos.Line)
	}
}

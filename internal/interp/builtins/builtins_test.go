package builtins_test

import (
	"testing"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
	"github.com/apptap/tap/internal/interp/builtins"
	"github.com/apptap/tap/internal/lexer"
	"github.com/apptap/tap/internal/parser"
)

func eval(t *testing.T, source string) (*ast.Expr, *interp.Interp) {
	t.Helper()
	it := interp.New(interp.Options{MaxEnvironmentCount: 4096})
	builtins.RegisterAll(it)

	l := lexer.New(source)
	p := parser.New(l, it.Errors)
	head := p.Parse()

	last := interp.NilValue()
	for e := head; e != nil; e = e.Next {
		last = it.Eval(e)
	}
	return last, it
}

func TestStringPrimitives(t *testing.T) {
	if got, _ := eval(t, `(size "hello")`); got.Int != 5 {
		t.Errorf("size: got %d, want 5", got.Int)
	}
	if got, _ := eval(t, `(substr "hello world" 6)`); got.Str != "world" {
		t.Errorf("substr open-ended: got %q, want %q", got.Str, "world")
	}
	if got, _ := eval(t, `(substr "hello world" 0 4)`); got.Str != "hello" {
		t.Errorf("substr bounded: got %q, want %q", got.Str, "hello")
	}
	if got, _ := eval(t, `(+ "foo" "bar")`); got.Str != "foobar" {
		t.Errorf("string +: got %q, want %q", got.Str, "foobar")
	}
	if got, _ := eval(t, `(find "hello world" "world")`); got.Kind != ast.KindInt || got.Int != 6 {
		t.Errorf("find: got %v, want 6", ast.Print(got))
	}
}

func TestCasingPrimitives(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{`(upper-case "hello")`, "HELLO"},
		{`(lower-case "HELLO")`, "hello"},
		{`(title-case "hello world")`, "Hello World"},
	}
	for _, c := range cases {
		got, _ := eval(t, c.src)
		if got.Str != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got.Str, c.want)
		}
	}
}

func TestArithmeticOverloads(t *testing.T) {
	if got, _ := eval(t, "(+ 1 2 3 4)"); got.Int != 10 {
		t.Errorf("int +: got %d, want 10", got.Int)
	}
	if got, _ := eval(t, "(* 2 3 4)"); got.Int != 24 {
		t.Errorf("int *: got %d, want 24", got.Int)
	}
	if got, _ := eval(t, "(/ 10 3)"); got.Int != 3 {
		t.Errorf("int /: got %d, want 3", got.Int)
	}
	if got, _ := eval(t, "(max 3 9 1)"); got.Int != 9 {
		t.Errorf("max: got %d, want 9", got.Int)
	}
}

func TestArrayPrimitives(t *testing.T) {
	got, it := eval(t, "(size {1 2 3 4})")
	if got.Kind != ast.KindInt || got.Int != 4 {
		t.Fatalf("array size: got %v", ast.Print(got))
	}
	if it.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", it.Errors.Entries())
	}

	doubled, _ := eval(t, "(map {1 2 3} (function [x] [(* x 2)]))")
	if doubled.Kind != ast.KindArray || doubled.Arr.Len() != 3 {
		t.Fatalf("map result: %v", ast.Print(doubled))
	}
	if doubled.Arr.At(0).Int != 2 || doubled.Arr.At(2).Int != 6 {
		t.Fatalf("map values wrong: %d, %d", doubled.Arr.At(0).Int, doubled.Arr.At(2).Int)
	}

	reversed, _ := eval(t, "(reverse {1 2 3})")
	if reversed.Arr.At(0).Int != 3 || reversed.Arr.At(2).Int != 1 {
		t.Fatalf("reverse wrong: %s", ast.Print(reversed))
	}
}

func TestDatePrimitives(t *testing.T) {
	got, it := eval(t, `(year (+years (dat "2024-01-15") 1))`)
	if it.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", it.Errors.Entries())
	}
	if got.Kind != ast.KindInt || got.Int != 2025 {
		t.Fatalf("year of +years result: got %v, want 2025", ast.Print(got))
	}
	if month, _ := eval(t, `(month (dat "2024-03-15"))`); month.Int != 3 {
		t.Errorf("month: got %d, want 3", month.Int)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	encoded, it := eval(t, `(json-encode {1 2 3})`)
	if encoded.Kind != ast.KindString {
		t.Fatalf("json-encode: got kind %v", encoded.Kind)
	}
	if it.Errors.Len() != 0 {
		t.Fatalf("unexpected encode errors: %v", it.Errors.Entries())
	}

	decoded, it2 := eval(t, `(json-decode "[1,2,3]")`)
	if decoded.Kind != ast.KindArray || decoded.Arr.Len() != 3 {
		t.Fatalf("json-decode: got %s", ast.Print(decoded))
	}
	if decoded.Arr.At(1).Int != 2 {
		t.Fatalf("json-decode element wrong: %s", ast.Print(decoded.Arr.At(1)))
	}
	if it2.Errors.Len() != 0 {
		t.Fatalf("unexpected decode errors: %v", it2.Errors.Entries())
	}
}

func TestJSONDecodeInvalidRecordsError(t *testing.T) {
	_, it := eval(t, `(json-decode "not json")`)
	if it.Errors.Len() == 0 {
		t.Fatalf("expected an error for invalid JSON input")
	}
}

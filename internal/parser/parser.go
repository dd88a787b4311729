// Package parser converts a Tap token stream into an *ast.Expr tree
// (spec.md §4.D).
package parser

import (
	"strconv"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/errlog"
	"github.com/apptap/tap/internal/lexer"
	"github.com/apptap/tap/internal/token"
)

// Parser builds an expression tree from a token stream, recovering from
// bracket errors and continuing to the end of input (spec.md §4.D "Error
// recovery: parsing is best-effort").
type Parser struct {
	toks []token.Token
	pos  int
	log  *errlog.Log
}

// New creates a Parser reading from l. Errors are recorded into log.
func New(l *lexer.Lexer, log *errlog.Log) *Parser {
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	for _, e := range l.Errors() {
		log.Record(errlog.UnclosedStrLit, e.Message, e.Pos.Line, e.Pos.Column)
	}
	return &Parser{toks: toks, log: log}
}

// Parse parses the full token stream and returns the head of the resulting
// expression sequence (siblings chained via Next), or a KindNil Expr if
// nothing meaningful was parsed or a fatal bracket error occurred.
func (p *Parser) Parse() *ast.Expr {
	head, _ := p.parseSequence(nil)
	if head == nil {
		return &ast.Expr{Kind: ast.KindNil}
	}
	return head
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) atEOF() bool       { return p.cur().Kind == token.EOF }
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parseSequence parses a run of sibling expressions until EOF or a closing
// bracket (which it does not consume), returning the head and tail of the
// chain it built.
func (p *Parser) parseSequence(open *token.Token) (*ast.Expr, *ast.Expr) {
	var head, tail *ast.Expr
	for {
		switch p.cur().Kind {
		case token.EOF:
			if open != nil {
				p.log.Record(errlog.UnclosedParen, "unclosed parenthesis", open.Pos.Line, open.Pos.Column)
			}
			return head, tail
		case token.RParen, token.RBracket, token.RBrace:
			if open == nil {
				t := p.advance()
				p.log.Record(errlog.UnmatchedParen, "unmatched parenthesis", t.Pos.Line, t.Pos.Column)
				continue
			}
			return head, tail
		default:
			expr := p.parseOne()
			if expr == nil {
				continue
			}
			if head == nil {
				head = expr
			} else {
				tail.Next = expr
			}
			tail = expr
		}
	}
}

// parseOne parses a single expression: an atom, or a bracketed
// container/lazy/array expression.
func (p *Parser) parseOne() *ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.LParen:
		return p.parseBracketed(ast.KindContainerExp, ast.FlagNone)
	case token.LBracket:
		return p.parseBracketed(ast.KindLazyExp, ast.FlagNone)
	case token.LBrace:
		return p.parseBracketed(ast.KindContainerExp, ast.FlagArrayExpr)
	case token.String:
		p.advance()
		return &ast.Expr{Kind: ast.KindString, StrFlag: ast.StringLiteral, Str: t.Literal, Line: t.Pos.Line, Column: t.Pos.Column}
	case token.Symbol:
		p.advance()
		return &ast.Expr{Kind: ast.KindInt, Int: int64(hashSymbol(t.Literal)), Line: t.Pos.Line, Column: t.Pos.Column}
	case token.Ident:
		p.advance()
		return classifyAtom(t)
	default:
		// Stray closer already handled by caller; skip defensively.
		p.advance()
		return nil
	}
}

func (p *Parser) parseBracketed(kind ast.Kind, flag ast.ExprFlag) *ast.Expr {
	open := p.advance() // consume opener
	child, _ := p.parseSequence(&open)
	switch p.cur().Kind {
	case token.RParen, token.RBracket, token.RBrace:
		// Any closing bracket closes the innermost open one — the
		// original does not verify bracket-type agreement, only that
		// opens and closes balance overall (spec.md §4.D rule 4).
		p.advance()
	}
	// EOF with no matching closer was already recorded by parseSequence.
	node := &ast.Expr{Kind: kind, Flag: flag, Line: open.Pos.Line, Column: open.Pos.Column}
	if child == nil {
		// Empty bodies "()" produce a nil expression (spec.md §4.D rule 6):
		// the bracket structure is retained but marked nil so the
		// evaluator ignores it.
		node.Kind = ast.KindNil
		return node
	}
	node.Child = child
	return node
}

// classifyAtom implements the progressive token-kind inference of spec.md
// §4.D rule 2/3: a bare atom starts as nil, is promoted to integer on a
// leading digit or sign, to float on an internal '.', flagged for base
// conversion on an internal ':', demoted to a variable-reference string on
// any non-numeric character, and a leading ':' always marks a variable
// reference.
func classifyAtom(t token.Token) *ast.Expr {
	text := t.Literal
	base := &ast.Expr{Line: t.Pos.Line, Column: t.Pos.Column}

	if text == "" {
		base.Kind = ast.KindNil
		return base
	}

	if text[0] == ':' {
		base.Kind = ast.KindString
		base.StrFlag = ast.StringVariable
		base.Str = text
		return base
	}

	isNumeric, isFloat, baseSuffix, digits := scanNumeric(text)
	if isNumeric {
		if baseSuffix >= 0 {
			n, err := strconv.ParseInt(digits, baseSuffix, 64)
			if err == nil {
				base.Kind = ast.KindInt
				base.Int = n
				return base
			}
		} else if isFloat {
			f, err := strconv.ParseFloat(text, 64)
			if err == nil {
				base.Kind = ast.KindFloat
				base.Float = f
				return base
			}
		} else {
			n, err := strconv.ParseInt(text, 10, 64)
			if err == nil {
				base.Kind = ast.KindInt
				base.Int = n
				return base
			}
		}
	}

	base.Kind = ast.KindString
	base.StrFlag = ast.StringVariable
	base.Str = text
	return base
}

// scanNumeric reports whether text looks like digits[.digits][:base],
// optionally signed, per spec.md §4.D rule 2/3. baseSuffix is -1 unless a
// ':base' suffix was present, in which case digits is the prefix to parse
// in that base.
func scanNumeric(text string) (isNumeric, isFloat bool, baseSuffix int, digits string) {
	s := text
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		if len(s) == 1 {
			return false, false, -1, ""
		}
		s = s[1:]
	}
	if s == "" {
		return false, false, -1, ""
	}
	sawDot := false
	sawColon := false
	colonIdx := -1
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			// fine
		case c == '.' && !sawDot && !sawColon:
			sawDot = true
		case c == ':' && !sawColon:
			sawColon = true
			colonIdx = i
		default:
			return false, false, -1, ""
		}
	}
	if sawColon {
		baseText := s[colonIdx+1:]
		b, err := strconv.Atoi(baseText)
		if err != nil || b < 2 || b > 36 {
			return false, false, -1, ""
		}
		prefix := s
		if text[0] == '+' || text[0] == '-' {
			prefix = text[:1] + s[:colonIdx]
		} else {
			prefix = s[:colonIdx]
		}
		return true, false, b, prefix
	}
	return true, sawDot, -1, s
}

// hashSymbol compiles a symbol's name to an integer hash at parse time, per
// spec.md §4.D rule 2 and the Glossary's "Symbol" entry: symbol equality is
// hash equality. Uses the same hash function as the symbol table (spec.md
// §4.B) applied over a much larger modulus, matching the original's design
// (spec.md §9 "Hash collision / plurality").
func hashSymbol(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = uint32(name[i]) + (h << 5) - h
	}
	return h % symbolModulus
}

const symbolModulus = 737279 // original INITIAL_SYMBOL_COUNT

// Parse is a convenience wrapper: tokenize+parse source text in one call,
// recording errors into log.
func Parse(source string, log *errlog.Log) *ast.Expr {
	l := lexer.New(source)
	p := New(l, log)
	return p.Parse()
}

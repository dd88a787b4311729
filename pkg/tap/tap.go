// Package tap is the embeddable entry point into the interpreter: wire
// a lexer, parser, and primitive catalogue together behind a small
// surface so a host program doesn't need to know about internal/ at
// all (mirrors the teacher's pkg/dwscript split between cmd/ plumbing
// and a reusable library surface).
package tap

import (
	"io"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/config"
	"github.com/apptap/tap/internal/errlog"
	"github.com/apptap/tap/internal/interp"
	"github.com/apptap/tap/internal/interp/builtins"
	"github.com/apptap/tap/internal/lexer"
	"github.com/apptap/tap/internal/parser"
)

// Interpreter is a ready-to-run Tap context: parsing and evaluation
// share nothing across Run calls except the root environment and the
// error log, so definitions made by one Run are visible to the next and
// errors accumulate across Runs (see Errors).
type Interpreter struct {
	it *interp.Interp
}

// New creates an Interpreter with the full primitive catalogue
// registered at the root scope and the given config's constants
// threaded through. Pass config.Default() for spec.md §3's defaults.
func New(cfg config.Config, out io.Writer) *Interpreter {
	it := interp.New(interp.Options{
		MaxEnvironmentCount:  cfg.MaxEnvironmentCount,
		DefaultDateFormat:    cfg.DefaultDateFormat,
		PrintTrailingNewline: cfg.PrintTrailingNewline,
		Out:                  out,
	})
	builtins.RegisterAll(it)
	return &Interpreter{it: it}
}

// Result is the outcome of one Run: the evaluated value's printed form
// and any errors recorded during parsing or evaluation.
type Result struct {
	Printed string
	Errors  *errlog.Log
}

// Run lexes, parses, and evaluates source in this interpreter's root
// scope, returning the printed form of the last top-level expression's
// value (spec.md §6 "prints the printed form of the resulting value").
// Parser and evaluator errors are both recorded into the same log and
// never stop evaluation of subsequent top-level expressions (spec.md
// §4.D/§7 "errors are never thrown").
func (r *Interpreter) Run(source string) Result {
	l := lexer.New(source)
	p := parser.New(l, r.it.Errors)
	head := p.Parse()

	lastVal := interp.NilValue()
	for e := head; e != nil; e = e.Next {
		lastVal = r.it.Eval(e)
	}
	return Result{Printed: ast.Print(lastVal), Errors: r.it.Errors}
}

// Errors exposes the accumulated error log across every Run call made
// on this Interpreter so far.
func (r *Interpreter) Errors() *errlog.Log {
	return r.it.Errors
}

package interp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/interp"
	"github.com/apptap/tap/internal/interp/builtins"
	"github.com/apptap/tap/internal/lexer"
	"github.com/apptap/tap/internal/parser"
)

// TestFixtures runs every .tap script under testdata/fixtures through a
// fresh interpreter and snapshots the printed value of each top-level
// expression alongside the plain error report. One snapshot per fixture
// file keeps a whole
// script's behavior reviewable in a single diff.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/fixtures/*.tap")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, path := range files {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".tap")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}

			it := interp.New(interp.Options{MaxEnvironmentCount: 4096})
			builtins.RegisterAll(it)

			l := lexer.New(string(source))
			p := parser.New(l, it.Errors)
			head := p.Parse()

			var results []string
			for e := head; e != nil; e = e.Next {
				results = append(results, ast.Print(it.Eval(e)))
			}

			var out strings.Builder
			fmt.Fprintf(&out, "Results >>>>\n%s\n", strings.Join(results, "\n"))
			if report := it.Errors.Report(); report != "" {
				fmt.Fprintf(&out, "Errors >>>>\n%s\n", report)
			}

			snaps.MatchSnapshot(t, out.String())
		})
	}
}

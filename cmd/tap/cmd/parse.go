package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apptap/tap/internal/ast"
	"github.com/apptap/tap/internal/diag"
	"github.com/apptap/tap/internal/errlog"
	"github.com/apptap/tap/internal/lexer"
	"github.com/apptap/tap/internal/parser"
)

var dumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Tap file or expression and print the tree plus any errors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
	parseCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the raw parsed tree instead of the printed form")
}

func runParse(_ *cobra.Command, args []string) error {
	if len(args) == 1 && evalExpr == "" {
		filePath = args[0]
	}
	source, label, err := resolveSource(args)
	if err != nil {
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	log := &errlog.Log{}
	l := lexer.New(source)
	p := parser.New(l, log)
	head := p.Parse()

	if dumpAST {
		fmt.Print(ast.Dump(head))
	} else {
		for e := head; e != nil; e = e.Next {
			fmt.Println(ast.Print(e))
		}
	}

	fmt.Print(log.Report())
	if log.Len() > 0 {
		r := diag.New(source, label)
		fmt.Print(r.FormatAll(log))
	}
	return nil
}

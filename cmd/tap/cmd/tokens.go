package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apptap/tap/internal/lexer"
	"github.com/apptap/tap/internal/token"
)

var showPos bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a Tap file or expression (diagnostic only)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	tokensCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func runTokens(_ *cobra.Command, args []string) error {
	if len(args) == 1 && evalExpr == "" {
		filePath = args[0]
	}
	source, _, err := resolveSource(args)
	if err != nil {
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	l := lexer.New(source)
	for {
		t := l.NextToken()
		printTok(t)
		if t.Kind == token.EOF {
			break
		}
	}
	for _, e := range l.Errors() {
		fmt.Fprintf(os.Stderr, "lex error: %s at %d:%d\n", e.Message, e.Pos.Line, e.Pos.Column)
	}
	return nil
}

func printTok(t token.Token) {
	out := fmt.Sprintf("%-12s %q", t.Kind, t.Literal)
	if showPos {
		out += fmt.Sprintf(" @%d:%d", t.Pos.Line, t.Pos.Column)
	}
	fmt.Println(out)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apptap/tap/internal/config"
	"github.com/apptap/tap/internal/diag"
	"github.com/apptap/tap/pkg/tap"
)

const (
	exitSuccess       = 0
	exitMissingArg    = 1
	exitOutOfMemory   = 2
	usageNoArgsNotice = "usage: tap run <source> | tap run -e <source> | tap run -f <file>\n"
)

var (
	evalExpr string
	filePath string
)

var runCmd = &cobra.Command{
	Use:   "run [source]",
	Short: "Evaluate a Tap program",
	Long: `Evaluate Tap source and print the printed form of the last
top-level expression's value, followed by the error report (spec.md §6).

The positional argument is taken as literal source text, matching the
spec's "executable called with a single argument" contract:

  tap run '(+ 1 2)'

-e/--eval is an equivalent ambient convenience, and -f/--file reads
source from a file on disk instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of the positional argument")
	runCmd.Flags().StringVarP(&filePath, "file", "f", "", "read source from this file")
}

func runScript(cmd *cobra.Command, args []string) error {
	source, label, err := resolveSource(args)
	if err != nil {
		fmt.Fprint(os.Stderr, usageNoArgsNotice)
		os.Exit(exitMissingArg)
		return nil
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
		cfg = loaded
	}

	interp := tap.New(cfg, os.Stdout)
	result := interp.Run(source)

	fmt.Println(result.Printed)
	fmt.Print(result.Errors.Report())

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose && result.Errors.Len() > 0 {
		r := diag.New(source, label)
		fmt.Fprint(os.Stderr, r.FormatAll(result.Errors))
	}

	os.Exit(exitSuccess)
	return nil
}

// resolveSource picks the source text per run.go's -e/-f/positional
// precedence, matching spec.md §6's "no argument" failure case.
func resolveSource(args []string) (source, label string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case filePath != "":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return "", "", err
		}
		return string(content), filePath, nil
	case len(args) == 1:
		return args[0], "<arg>", nil
	default:
		return "", "", fmt.Errorf("no source provided")
	}
}

// Command tap is the Tap language CLI: run, tokens, parse, and version
// subcommands over the interpreter in pkg/tap.
package main

import (
	"fmt"
	"os"

	"github.com/apptap/tap/cmd/tap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

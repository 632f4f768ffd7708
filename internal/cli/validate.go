package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/validation"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		html := fs.Bool("html", false, "Read question text as HTML")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		paths := fs.Args()
		if len(paths) == 0 {
			fmt.Fprintln(stderr, "Missing <bank.json>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		gen := orchestrator.New(orchestrator.WithValidator(validation.New(validation.WithHTMLMarkup(*html))))
		set, err := gen.Validate(context.Background(), bank.SourcesFromPaths(paths...))
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return orchestrator.ExitCode(err)
		}

		choice := 0
		for _, q := range set {
			if q.IsMultipleChoice() {
				choice++
			}
		}
		fmt.Fprintf(stdout, "OK: %d questions (%d multiple choice, %d open)\n", len(set), choice, len(set)-choice)
		return ExitOK
	}
}

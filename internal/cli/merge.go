package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/output"
)

// runMerge builds the handler for the merge command.
func runMerge(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		out := fs.String("out", "", "Output file, or - for stdout (default: <first>_combined.json)")
		outDir := fs.String("out-dir", "", "Directory for the merged file")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		paths := fs.Args()
		if len(paths) == 0 {
			fmt.Fprintln(stderr, "Missing <bank.json>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		records, err := orchestrator.New().Merge(context.Background(), bank.SourcesFromPaths(paths...))
		if err != nil {
			fmt.Fprintf(stderr, "Merge failed:\n%v\n", err)
			return orchestrator.ExitCode(err)
		}

		if *out == "-" {
			payload, err := output.EncodeMerged(records)
			if err != nil {
				fmt.Fprintf(stderr, "Merge failed:\n%v\n", err)
				return ExitError
			}
			_, _ = stdout.Write(payload)
			return ExitOK
		}

		target := *out
		if target == "" {
			target, err = output.MergedPath(paths, *outDir)
			if err != nil {
				fmt.Fprintf(stderr, "Merge failed:\n%v\n", err)
				return ExitError
			}
		}
		if err := output.WriteMerged(target, records); err != nil {
			fmt.Fprintf(stderr, "Merge failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Merged %d questions into %s\n", len(records), target)
		return ExitOK
	}
}

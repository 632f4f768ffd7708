package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/themes"
)

// runThemes builds the handler for the themes command.
func runThemes(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		asJSON := fs.Bool("json", false, "Print the catalog as JSON")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		catalog, err := themes.New()
		if err != nil {
			fmt.Fprintf(stderr, "Theme catalog unavailable:\n%v\n", err)
			return ExitError
		}

		if *asJSON {
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(catalog.List()); err != nil {
				fmt.Fprintf(stderr, "encode: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		for _, info := range catalog.List() {
			marker := " "
			if info.Name == catalog.Default() {
				marker = "*"
			}
			variants := "-"
			if len(info.Variants) > 0 {
				variants = strings.Join(info.Variants, ", ")
			}
			fmt.Fprintf(stdout, "%s %-10s %-8s variants: %-12s %s\n", marker, info.Name, info.Version, variants, info.Description)
		}
		return ExitOK
	}
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/prefs"
)

// runPrefs builds the handler for the prefs command.
func runPrefs(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		path := fs.String("prefs", "", "Preference file (default: ./json2beamer.ini or the user config dir)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		store, err := openStore(*path)
		if err != nil {
			fmt.Fprintf(stderr, "Preferences unavailable:\n%v\n", err)
			return ExitError
		}

		action := "show"
		rest := fs.Args()
		if len(rest) > 0 {
			action, rest = rest[0], rest[1:]
		}

		switch action {
		case "show":
			current := store.Load()
			fmt.Fprintf(stdout, "# %s\n", store.Path())
			fmt.Fprintf(stdout, "%s = %s\n", prefs.KeyTitle, current.Title)
			fmt.Fprintf(stdout, "%s = %s\n", prefs.KeyFSQ, current.FSQ)
			fmt.Fprintf(stdout, "%s = %s\n", prefs.KeyFSA, current.FSA)
			fmt.Fprintf(stdout, "%s = %s\n", prefs.KeyAlertColor, current.AlertColor)
			fmt.Fprintf(stdout, "%s = %s\n", prefs.KeyShuffleSeed, current.ShuffleSeed)
			return ExitOK
		case "path":
			fmt.Fprintln(stdout, store.Path())
			return ExitOK
		case "set":
			if len(rest) == 0 {
				fmt.Fprintln(stderr, "Missing <key>=<value>")
				printCommandUsage(cmd, stderr)
				return ExitUsage
			}
			updated := store.Load()
			for _, pair := range rest {
				key, value, ok := strings.Cut(pair, "=")
				if !ok {
					fmt.Fprintf(stderr, "Invalid assignment %q\n", pair)
					return ExitUsage
				}
				if err := assign(&updated, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
					fmt.Fprintln(stderr, err)
					return ExitUsage
				}
			}
			if err := updated.Resolve().WithDefaults().Validate(); err != nil {
				fmt.Fprintf(stderr, "Invalid preferences:\n%v\n", err)
				return ExitUsage
			}
			if err := store.Save(updated); err != nil {
				fmt.Fprintf(stderr, "Saving failed:\n%v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Saved %s\n", store.Path())
			return ExitOK
		default:
			fmt.Fprintf(stderr, "Unknown action %q\n", action)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
	}
}

func assign(p *prefs.Preferences, key, value string) error {
	switch key {
	case prefs.KeyTitle:
		p.Title = value
	case prefs.KeyFSQ:
		p.FSQ = value
	case prefs.KeyFSA:
		p.FSA = value
	case prefs.KeyAlertColor:
		p.AlertColor = value
	case prefs.KeyShuffleSeed:
		p.ShuffleSeed = value
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return nil
}

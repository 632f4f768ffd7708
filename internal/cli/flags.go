package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-json2beamer/internal/logging"
	"github.com/goliatone/go-json2beamer/pkg/prefs"
)

// optionFlags holds the generation option flags. Blank flags fall back to
// the saved preferences.
type optionFlags struct {
	title     *string
	fsq       *string
	fsa       *string
	alert     *string
	seed      *string
	prefsPath *string
}

func bindOptionFlags(fs *flag.FlagSet) *optionFlags {
	return &optionFlags{
		title:     fs.String("title", "", "Deck title"),
		fsq:       fs.String("fsq", "", "Question font size (tiny .. Huge)"),
		fsa:       fs.String("fsa", "", "Answer font size (tiny .. Huge)"),
		alert:     fs.String("alert", "", "Alert color for the correct answer (#RRGGBB)"),
		seed:      fs.String("seed", "", "Shuffle seed; integer or any text"),
		prefsPath: fs.String("prefs", "", "Preference file (default: ./json2beamer.ini or the user config dir)"),
	}
}

func (f *optionFlags) preferences() prefs.Preferences {
	return prefs.Preferences{
		Title:       *f.title,
		FSQ:         *f.fsq,
		FSA:         *f.fsa,
		AlertColor:  *f.alert,
		ShuffleSeed: *f.seed,
	}
}

func openStore(path string) (*prefs.Store, error) {
	if strings.TrimSpace(path) != "" {
		return prefs.Open(prefs.WithPath(path))
	}
	return prefs.Open()
}

type logFlags struct {
	level *string
	file  *string
}

func bindLogFlags(fs *flag.FlagSet) *logFlags {
	return &logFlags{
		level: fs.String("log-level", "info", "Log level: debug, info, warn, error"),
		file:  fs.String("log-file", "", "Also write JSON logs to this file (rotated)"),
	}
}

func (f *logFlags) logger(stderr io.Writer) *zap.Logger {
	return logging.New(logging.Config{Level: *f.level, Console: stderr, File: *f.file})
}

// parseFlags parses args and reports the exit code to return when parsing
// stops the command.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

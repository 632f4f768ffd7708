// Package cli implements the json2beamer command line.
package cli

import (
	"fmt"
	"io"

	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
)

// Exit codes shared with the pipeline.
const (
	ExitOK    = orchestrator.ExitOK
	ExitError = orchestrator.ExitFailure
	ExitUsage = orchestrator.ExitUsage
)

// Command is one json2beamer sub-command.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

// Run dispatches args to a sub-command and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  json2beamer <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"json2beamer <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("generate", "Build a Beamer deck from question banks", []string{
		"json2beamer generate [options] <bank.json>...",
	}, runGenerate),
	command("merge", "Merge question banks into one renumbered file", []string{
		"json2beamer merge [-out <path>] <bank.json>...",
	}, runMerge),
	command("validate", "Check question banks without rendering", []string{
		"json2beamer validate [-html] <bank.json>...",
	}, runValidate),
	command("prefs", "Show or change saved preferences", []string{
		"json2beamer prefs [-prefs <path>] [show]",
		"json2beamer prefs [-prefs <path>] set <key>=<value>...",
		"json2beamer prefs [-prefs <path>] path",
	}, runPrefs),
	command("themes", "List the available deck themes", []string{
		"json2beamer themes [-json]",
	}, runThemes),
	command("serve", "Serve the generator over HTTP", []string{
		"json2beamer serve [-addr <host:port>] [-origins <a,b>]",
	}, runServe),
}

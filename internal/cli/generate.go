package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	json2beamer "github.com/goliatone/go-json2beamer"
	"github.com/goliatone/go-json2beamer/internal/compile"
	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/output"
	"github.com/goliatone/go-json2beamer/pkg/renderers/beamer"
	"github.com/goliatone/go-json2beamer/pkg/renderers/jsonkey"
	"github.com/goliatone/go-json2beamer/pkg/renderers/preview"
	"github.com/goliatone/go-json2beamer/pkg/validation"
)

// documentCompiler turns a written deck into a PDF.
type documentCompiler interface {
	Compile(ctx context.Context, texPath string) (string, error)
}

// newCompiler is a test seam for the -pdf flag.
var newCompiler = func() documentCompiler {
	return compile.New()
}

// runGenerate builds the handler for the generate command.
func runGenerate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		opts := bindOptionFlags(fs)
		logs := bindLogFlags(fs)
		out := fs.String("out", "", "Output file, or - for stdout (default: next to the first bank)")
		outDir := fs.String("out-dir", "", "Directory for generated files (default: the first bank's directory)")
		format := fs.String("format", beamer.Name, "Output format: beamer, json (answer key) or preview (HTML)")
		themeName := fs.String("theme", "", "Deck theme (see json2beamer themes)")
		variant := fs.String("variant", "", "Theme variant, e.g. 4x3 or dark")
		html := fs.Bool("html", false, "Read question text as HTML")
		interactive := fs.Bool("interactive", false, "Prompt for the generation options")
		savePrefs := fs.Bool("save-prefs", false, "Save the effective options as preferences")
		pdf := fs.Bool("pdf", false, "Compile the deck with pdflatex")
		keepMerged := fs.Bool("keep-merged", false, "Also write the merged bank as <first>_combined.json")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		paths := fs.Args()
		if len(paths) == 0 {
			fmt.Fprintln(stderr, "Missing <bank.json>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		switch *format {
		case beamer.Name, jsonkey.Name, preview.Name:
		default:
			fmt.Fprintf(stderr, "Unknown format %q (want %s, %s or %s)\n", *format, beamer.Name, jsonkey.Name, preview.Name)
			return ExitUsage
		}
		if *pdf && (*format != beamer.Name || *out == "-") {
			fmt.Fprintln(stderr, "-pdf needs a beamer deck written to a file")
			return ExitUsage
		}

		ctx := context.Background()
		logger := logs.logger(stderr).With(zap.String("run_id", uuid.NewString()))
		defer func() { _ = logger.Sync() }()

		store, err := openStore(*opts.prefsPath)
		if err != nil {
			logger.Error("preferences unavailable", zap.Error(err))
			return ExitError
		}
		effective := store.Load().Merge(opts.preferences())

		if *interactive {
			driver := newPromptDriver()
			effective, err = askPreferences(ctx, driver, effective)
			if err != nil {
				return reportPromptError(stderr, err)
			}
			if !*savePrefs {
				save, err := driver.Confirm(ctx, ConfirmConfig{Message: "Save these options as preferences?"})
				if err != nil {
					return reportPromptError(stderr, err)
				}
				*savePrefs = save
			}
		}
		if *savePrefs {
			if err := store.Save(effective); err != nil {
				logger.Error("saving preferences failed", zap.Error(err))
				return ExitError
			}
			logger.Info("preferences saved", zap.String("path", store.Path()))
		}

		pipeline := []orchestrator.Option{
			orchestrator.WithValidator(validation.New(validation.WithHTMLMarkup(*html))),
			orchestrator.WithDefaultRenderer(*format),
			orchestrator.WithDefaultTheme(*themeName, *variant),
		}

		if *keepMerged {
			if code := writeMerged(ctx, logger, paths, *outDir, pipeline); code != ExitOK {
				return code
			}
		}

		start := time.Now()
		document, code, err := json2beamer.Generate(ctx, paths, effective.Resolve(), pipeline...)
		if err != nil {
			logger.Error("generation failed", zap.Error(err), zap.Int("exit_code", code))
			return code
		}

		target, err := targetPath(*out, *format, paths, *outDir)
		if err != nil {
			logger.Error("output path", zap.Error(err))
			return ExitError
		}
		if target == "-" {
			fmt.Fprint(stdout, document)
			return ExitOK
		}
		if err := output.WriteDocument(target, []byte(document)); err != nil {
			logger.Error("writing output failed", zap.Error(err))
			return ExitError
		}
		logger.Info("document written",
			zap.String("path", target),
			zap.Int("banks", len(paths)),
			zap.Duration("duration", time.Since(start)),
		)
		fmt.Fprintf(stdout, "Written %s\n", target)

		if *pdf {
			pdfPath, err := newCompiler().Compile(ctx, target)
			if err != nil {
				var compileErr *compile.Error
				if errors.As(err, &compileErr) {
					fmt.Fprintln(stderr, tail(compileErr.Log, 20))
				}
				logger.Error("pdf compilation failed", zap.Error(err))
				return ExitError
			}
			logger.Info("pdf written", zap.String("path", pdfPath))
			fmt.Fprintf(stdout, "Written %s\n", pdfPath)
		}
		return ExitOK
	}
}

func writeMerged(ctx context.Context, logger *zap.Logger, paths []string, dir string, options []orchestrator.Option) int {
	records, err := orchestrator.New(options...).Merge(ctx, bank.SourcesFromPaths(paths...))
	if err != nil {
		logger.Error("merge failed", zap.Error(err))
		return orchestrator.ExitCode(err)
	}
	target, err := output.MergedPath(paths, dir)
	if err != nil {
		logger.Error("merged path", zap.Error(err))
		return ExitError
	}
	if err := output.WriteMerged(target, records); err != nil {
		logger.Error("writing merged bank failed", zap.Error(err))
		return ExitError
	}
	logger.Info("merged bank written", zap.String("path", target), zap.Int("questions", len(records)))
	return ExitOK
}

func targetPath(out, format string, paths []string, dir string) (string, error) {
	if strings.TrimSpace(out) != "" {
		return out, nil
	}
	switch format {
	case jsonkey.Name:
		return output.KeyPath(paths, dir)
	case preview.Name:
		return output.PreviewPath(paths, dir)
	}
	return output.DocumentPath(paths, dir)
}

func reportPromptError(stderr io.Writer, err error) int {
	if errors.Is(err, ErrAborted) {
		fmt.Fprintln(stderr, "Aborted")
		return ExitError
	}
	fmt.Fprintf(stderr, "prompt failed: %v\n", err)
	return ExitError
}

func tail(log string, lines int) string {
	parts := strings.Split(strings.TrimRight(log, "\n"), "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, "\n")
}

package json2beamer

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/render"
)

// GenerationOptions aliases model.GenerationOptions for callers that only
// import the root package.
type GenerationOptions = model.GenerationOptions

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// DefaultOptions returns the documented generation defaults with no seed.
func DefaultOptions() GenerationOptions {
	return model.DefaultGenerationOptions()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the banks at paths (files or http(s) URLs), merges,
// validates, arranges and renders them as a Beamer deck. It returns the
// document and exit code 0 on success, or an empty document, a non-zero exit
// code and the typed error. Panics in any stage are recovered into a
// *render.RenderError.
func Generate(ctx context.Context, paths []string, options GenerationOptions, opts ...orchestrator.Option) (document string, code int, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			document = ""
			err = &render.RenderError{Message: fmt.Sprintf("internal failure: %v", recovered)}
			code = orchestrator.ExitCode(err)
		}
	}()

	gen := orchestrator.New(opts...)
	output, err := gen.Generate(ctx, orchestrator.Request{
		Sources: bank.SourcesFromPaths(paths...),
		Options: options,
	})
	if err != nil {
		return "", orchestrator.ExitCode(err), err
	}
	return string(output), orchestrator.ExitOK, nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithDefaultTheme forwards the default theme and variant.
func WithDefaultTheme(name, variant string) orchestrator.Option {
	return orchestrator.WithDefaultTheme(name, variant)
}

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-json2beamer/internal/bank/loader"
	"github.com/goliatone/go-json2beamer/pkg/arrange"
	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/render"
	"github.com/goliatone/go-json2beamer/pkg/renderers/beamer"
	"github.com/goliatone/go-json2beamer/pkg/renderers/jsonkey"
	"github.com/goliatone/go-json2beamer/pkg/renderers/preview"
	"github.com/goliatone/go-json2beamer/pkg/themes"
	"github.com/goliatone/go-json2beamer/pkg/validation"
)

// DefaultRenderer names the renderer used when a request leaves Renderer blank.
const DefaultRenderer = beamer.Name

// ErrNoBanks is returned when a request carries neither sources nor banks.
var ErrNoBanks = errors.New("orchestrator: at least one question bank is required")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom bank loader.
func WithLoader(loader bank.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithValidator injects a custom question validator.
func WithValidator(validator validation.QuestionValidator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
	}
}

// WithArrangerFactory overrides how the per-request shuffler is built from
// the request seed.
func WithArrangerFactory(factory arrange.Factory) Option {
	return func(o *Orchestrator) {
		o.arrangerFactory = factory
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves request theme names through selector. Pass nil
// to render without a theme.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeSpecified = true
	}
}

// WithDefaultTheme sets the theme and variant used when a request leaves them
// blank.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// Orchestrator coordinates the full pipeline from question banks to a
// rendered document. Configuration is read-only after New, so one
// Orchestrator serves concurrent Generate calls.
type Orchestrator struct {
	loader          bank.Loader
	validator       validation.QuestionValidator
	arrangerFactory arrange.Factory
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	themeSpecified  bool
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: DefaultRenderer,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of one generation.
type Request struct {
	// Sources are loaded in order. They are read after Banks.
	Sources []bank.Source

	// Banks allows callers to bypass the loader with pre-loaded records.
	Banks []bank.Bank

	// Options carries title, font sizes, alert color and seed. Blank fields
	// take their defaults.
	Options model.GenerationOptions

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a go-theme manifest. Blank values use
	// the orchestrator defaults.
	ThemeName    string
	ThemeVariant string
}

// Generate executes load → merge → validate → arrange → render and returns the
// rendered document. A failure at any stage returns the typed stage error
// wrapped with context and no output.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	themeConfig, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, err
	}

	// A blank alert color follows the theme before falling back to the default.
	options := req.Options
	if strings.TrimSpace(options.AlertColor) == "" {
		options.AlertColor = render.RenderOptions{Theme: themeConfig}.Token(beamer.TokenAlertColor, "")
	}
	options = options.WithDefaults()
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("orchestrator: options: %w", err)
	}

	set, err := o.validate(ctx, req.Banks, req.Sources)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	arranged := o.arrangerFactory(options.ShuffleSeed).Arrange(set)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, arranged, render.RenderOptions{
		Generation: options,
		Theme:      themeConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Merge loads sources and returns the merged, renumbered records.
func (o *Orchestrator) Merge(ctx context.Context, sources []bank.Source) ([]bank.Record, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	records, _, err := o.merge(ctx, nil, sources)
	return records, err
}

// Validate loads, merges and validates sources without rendering.
func (o *Orchestrator) Validate(ctx context.Context, sources []bank.Source) (model.QuestionSet, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	return o.validate(ctx, nil, sources)
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) merge(ctx context.Context, banks []bank.Bank, sources []bank.Source) ([]bank.Record, []bank.Origin, error) {
	if len(banks) == 0 && len(sources) == 0 {
		return nil, nil, ErrNoBanks
	}

	all := append([]bank.Bank(nil), banks...)
	if len(sources) > 0 {
		loaded, err := internalLoader.LoadAll(ctx, o.loader, sources)
		if err != nil {
			return nil, nil, fmt.Errorf("orchestrator: load banks: %w", err)
		}
		all = append(all, loaded...)
	}

	records, origins, err := internalLoader.MergeWithOrigins(all...)
	if err != nil {
		return nil, nil, fmt.Errorf("orchestrator: merge banks: %w", err)
	}
	return records, origins, nil
}

func (o *Orchestrator) validate(ctx context.Context, banks []bank.Bank, sources []bank.Source) (model.QuestionSet, error) {
	records, origins, err := o.merge(ctx, banks, sources)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set, err := o.validator.Validate(records)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: validate questions: %w", withOrigin(err, origins))
	}
	return set, nil
}

// withOrigin points a schema error on a merged question back at the bank and
// id the author wrote.
func withOrigin(err error, origins []bank.Origin) error {
	var schemaErr *bank.SchemaError
	if !errors.As(err, &schemaErr) {
		return err
	}
	id := schemaErr.QuestionID
	if id < 1 || id > len(origins) {
		return err
	}
	origin := origins[id-1]
	located := *schemaErr
	if located.Source == "" {
		located.Source = origin.Source
	}
	located.SourceID = origin.ID
	return &located
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.defaultTheme
		if variant == "" {
			variant = o.defaultVariant
		}
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve theme: %w", err)
	}
	return themes.RendererConfig(selection), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(bank.NewLoaderOptions())
	}
	if o.validator == nil {
		o.validator = validation.New()
	}
	if o.arrangerFactory == nil {
		o.arrangerFactory = arrange.NewShuffler
	}
	if o.registry == nil {
		o.registry = render.NewRegistry(jsonkey.New())
		renderer, err := beamer.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		page, err := preview.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: preview renderer: %w", err)
		} else {
			o.registry.MustRegister(page)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = DefaultRenderer
	}
	if !o.themeSpecified {
		catalog, err := themes.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: theme catalog: %w", err)
			return
		}
		o.themeSelector = catalog
	}
}

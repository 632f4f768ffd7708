package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-json2beamer/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

// ErrFilterExists is returned by RegisterFilter when the name is taken. pongo2
// filters are process-wide, so a second engine registering the same filter
// sees this error.
var ErrFilterExists = errors.New("gotemplate: filter already exists")

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	trimBlocks bool
	globals    map[string]any
	hooks      *gotemplatepkg.HookManager
}

// WithBaseDir loads templates from a directory on disk. It is consulted
// before any fs.FS given through WithFS, so a directory can override single
// files of an embedded bundle.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithTrimBlocks strips the newline after a block tag and the indentation in
// front of it, so control flow does not leak blank lines into the output.
// pongo2 trims differently once a template has executed, so an engine with
// trim blocks parses templates on every call instead of caching them.
func WithTrimBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.trimBlocks = enabled
	}
}

// WithGlobalData seeds values visible to every template of the engine.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithHooks runs the manager's pre hooks before every render and its post
// hooks over the rendered text, both in priority order. Pre hooks may replace
// HookContext.Data; post hooks return the text that replaces the output.
func WithHooks(hooks *gotemplatepkg.HookManager) Option {
	return func(cfg *config) {
		cfg.hooks = hooks
	}
}

// Engine satisfies template.TemplateRenderer with a pongo2 template set.
// Parsed templates are cached by path.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
	noCache   bool
	hooks     *gotemplatepkg.HookManager
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: DefaultExtension}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	set := pongo2.NewSet("json2beamer", loaders...)
	set.Options.TrimBlocks = cfg.trimBlocks
	set.Options.LStripBlocks = cfg.trimBlocks

	if len(cfg.globals) > 0 {
		globals, err := toContext(cfg.globals)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
		}
		set.Globals = globals
	}

	defaultFiltersOnce.Do(registerDefaultFilters)

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
		noCache:   cfg.trimBlocks,
		hooks:     cfg.hooks,
	}, nil
}

// RenderTemplate executes the named template. The extension is appended when
// missing. The result is returned and also copied to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.run(path, tmpl, data, fmt.Sprintf("template %q", path), out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	return e.run("", tmpl, data, "template string", out)
}

// RegisterFilter exposes fn to templates as name. Filters are global to the
// process; a taken name yields ErrFilterExists.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("%w: %q", ErrFilterExists, name)
	}

	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	if e.noCache {
		tmpl, err := e.set.FromFile(path)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
		}
		return tmpl, nil
	}

	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// run wraps execute with the configured hooks and copies the final text to
// every writer in out.
func (e *Engine) run(name string, tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	var chain *gotemplatepkg.HookChain
	var hookCtx *gotemplatepkg.HookContext
	if e.hooks != nil {
		chain = gotemplatepkg.NewHookChain(
			gotemplatepkg.WithPreHooksChain(e.hooks.PreHooks()...),
			gotemplatepkg.WithPostHooksChain(e.hooks.PostHooks()...),
		)
		hookCtx = &gotemplatepkg.HookContext{
			TemplateName: name,
			Data:         data,
			Metadata:     map[string]any{},
			IsPreHook:    true,
		}
		if err := chain.ExecutePreHooks(hookCtx); err != nil {
			return "", fmt.Errorf("gotemplate: pre hook for %s: %w", label, err)
		}
		data = hookCtx.Data
	}

	rendered, err := execute(tmpl, data, label)
	if err != nil {
		return "", err
	}

	if chain != nil {
		hookCtx.IsPreHook = false
		hookCtx.Output = rendered
		if rendered, err = chain.ExecutePostHooks(hookCtx); err != nil {
			return "", fmt.Errorf("gotemplate: post hook for %s: %w", label, err)
		}
	}

	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func execute(tmpl *pongo2.Template, data any, label string) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}
	return buf.String(), nil
}

// toContext turns data into a pongo2 context through a JSON round trip, so
// templates address struct fields by their json tag names. Numbers arrive as
// float64; views that print numbers should carry them as strings.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("template data must be an object: %w", err)
	}
	return ctx, nil
}

var defaultFiltersOnce sync.Once

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("indentlines") {
		_ = pongo2.RegisterFilter("indentlines", filterIndent)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterIndent prefixes every line after the first with param spaces.
func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	text := in.String()
	width := 2
	if param != nil && param.IsInteger() {
		width = param.Integer()
	}
	if width <= 0 || !strings.Contains(text, "\n") {
		return pongo2.AsValue(text), nil
	}
	return pongo2.AsValue(strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", width))), nil
}

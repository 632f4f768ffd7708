// Package themes ships the built-in Beamer look manifests and a go-theme
// selector over them. Manifest tokens use the beamer.* keys the Beamer
// renderer reads.
package themes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultTheme is selected when a request names no theme.
const DefaultTheme = "classic"

var (
	// ErrUnknownTheme is returned by Select for names not in the catalog.
	ErrUnknownTheme = errors.New("themes: unknown theme")
	// ErrUnknownVariant is returned by Select for variants the theme lacks.
	ErrUnknownVariant = errors.New("themes: unknown variant")
)

// Info summarises a theme for listings.
type Info struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Variants    []string `json:"variants"`
}

// Catalog holds theme manifests and implements theme.ThemeSelector.
type Catalog struct {
	manifests    map[string]*theme.Manifest
	descriptions map[string]string
	provider     theme.ThemeProvider
	defaultName  string
}

var _ theme.ThemeSelector = (*Catalog)(nil)

// Option customises a Catalog.
type Option func(*Catalog)

// WithDefault changes the theme used when Select receives an empty name.
func WithDefault(name string) Option {
	return func(c *Catalog) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			c.defaultName = trimmed
		}
	}
}

// WithManifest adds a manifest next to the built-ins. A manifest with a
// built-in name replaces it.
func WithManifest(manifest *theme.Manifest, description string) Option {
	return func(c *Catalog) {
		if manifest == nil || manifest.Name == "" {
			return
		}
		c.manifests[manifest.Name] = manifest
		c.descriptions[manifest.Name] = description
	}
}

// New builds a catalog seeded with the built-in manifests. Every manifest is
// registered with a go-theme registry so malformed manifests fail here.
func New(options ...Option) (*Catalog, error) {
	c := &Catalog{
		manifests:    make(map[string]*theme.Manifest),
		descriptions: make(map[string]string),
		defaultName:  DefaultTheme,
	}
	for _, builtin := range builtins() {
		c.manifests[builtin.manifest.Name] = builtin.manifest
		c.descriptions[builtin.manifest.Name] = builtin.description
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if _, ok := c.manifests[c.defaultName]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownTheme, c.defaultName)
	}

	registry := theme.NewRegistry()
	for _, name := range c.Names() {
		if err := registry.Register(c.manifests[name]); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", name, err)
		}
	}
	c.provider = registry
	return c, nil
}

// MustNew panics when the catalog cannot be built.
func MustNew(options ...Option) *Catalog {
	c, err := New(options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Provider exposes the go-theme registry backing the catalog.
func (c *Catalog) Provider() theme.ThemeProvider {
	return c.provider
}

// Default returns the name used for empty selections.
func (c *Catalog) Default() string {
	return c.defaultName
}

// Names lists theme names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List describes every theme in name order.
func (c *Catalog) List() []Info {
	names := c.Names()
	out := make([]Info, 0, len(names))
	for _, name := range names {
		manifest := c.manifests[name]
		variants := make([]string, 0, len(manifest.Variants))
		for variant := range manifest.Variants {
			variants = append(variants, variant)
		}
		sort.Strings(variants)
		out = append(out, Info{
			Name:        name,
			Version:     manifest.Version,
			Description: c.descriptions[name],
			Variants:    variants,
		})
	}
	return out
}

// Select resolves a theme and variant. Empty name means the default theme and
// empty variant means the base manifest.
func (c *Catalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.defaultName
	}
	manifest, ok := c.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
		}
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-json2beamer/pkg/model"
)

// RenderOptions describe per-request data renderers use to shape their output
// without touching the question set.
type RenderOptions struct {
	// Generation carries the deck title, font sizes, alert color and seed.
	// Renderers apply WithDefaults before reading it.
	Generation model.GenerationOptions
	// Theme is the resolved go-theme configuration. Nil means the renderer's
	// built-in look.
	Theme *theme.RendererConfig
}

// Token returns a theme token or fallback when no theme is selected or the
// token is blank.
func (o RenderOptions) Token(key, fallback string) string {
	if o.Theme == nil || o.Theme.Tokens == nil {
		return fallback
	}
	if value, ok := o.Theme.Tokens[key]; ok && value != "" {
		return value
	}
	return fallback
}

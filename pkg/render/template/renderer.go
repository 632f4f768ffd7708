package template

import (
	"io"
)

// TemplateRenderer is the template engine seam renderers depend on. Data is
// addressed by json tag names; see gotemplate.Engine.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}

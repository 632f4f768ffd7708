package json2beamer

import (
	"io/fs"

	"github.com/goliatone/go-json2beamer/pkg/renderers/beamer"
)

// EmbeddedTemplates exposes the built-in Beamer deck templates so callers can
// copy or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return beamer.TemplatesFS()
}

package beamer

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded deck templates so callers can copy and
// customise them, then pass them back through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

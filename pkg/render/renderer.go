package render

import (
	"context"

	"github.com/goliatone/go-json2beamer/pkg/model"
)

// Renderer converts an arranged QuestionSet into a document (LaTeX Beamer,
// JSON, etc.). Implementations must be pure functions of their inputs.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, set model.QuestionSet, options RenderOptions) ([]byte, error)
}

package json2beamer_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	json2beamer "github.com/goliatone/go-json2beamer"
	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/render"
	"github.com/goliatone/go-json2beamer/pkg/testsupport"
)

func TestGenerate_Success(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteBank(t, dir, "quiz.json", `[{
		"id": 1, "type": "multiple_choice", "prompt": "Pick **one**",
		"answer_choices": ["a", "b", "c"], "correct_answer": "c"
	}]`)

	options := json2beamer.DefaultOptions()
	options.ShuffleSeed = model.Seed(42)

	first, code, err := json2beamer.Generate(context.Background(), []string{path}, options)
	if err != nil || code != 0 {
		t.Fatalf("generate: code %d err %v", code, err)
	}
	second, _, err := json2beamer.Generate(context.Background(), []string{path}, options)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first != second {
		t.Fatalf("seeded generation is not byte-identical")
	}
	if !strings.Contains(first, `Pick \textbf{one}`) || !strings.Contains(first, `\alert<2>{c}`) {
		t.Fatalf("unexpected document:\n%s", first)
	}
}

func TestGenerate_MissingFile(t *testing.T) {
	document, code, err := json2beamer.Generate(context.Background(), []string{filepath.Join(t.TempDir(), "nope.json")}, json2beamer.DefaultOptions())
	if document != "" || code != orchestrator.ExitNotFound || err == nil {
		t.Fatalf("expected not found, got code %d err %v", code, err)
	}
}

func TestGenerate_RecoversPanics(t *testing.T) {
	path := testsupport.WriteBank(t, t.TempDir(), "quiz.json", `[{"id": 1, "type": "open", "prompt": "p"}]`)
	panicky := panicRenderer{}

	document, code, err := json2beamer.Generate(context.Background(), []string{path}, json2beamer.DefaultOptions(),
		orchestrator.WithRegistry(render.NewRegistry(panicky)),
		orchestrator.WithDefaultRenderer(panicky.Name()),
	)
	var renderErr *render.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected recovered render error, got %v", err)
	}
	if document != "" || code != orchestrator.ExitRender {
		t.Fatalf("unexpected result %q code %d", document, code)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(json2beamer.EmbeddedTemplates(), "templates/deck.tmpl"); err != nil {
		t.Fatalf("expected deck template: %v", err)
	}
}

type panicRenderer struct{}

func (panicRenderer) Name() string        { return "panic" }
func (panicRenderer) ContentType() string { return "text/plain" }
func (panicRenderer) Render(context.Context, model.QuestionSet, render.RenderOptions) ([]byte, error) {
	panic("renderer exploded")
}

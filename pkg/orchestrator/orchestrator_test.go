package orchestrator_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/render"
	"github.com/goliatone/go-json2beamer/pkg/renderers/jsonkey"
	"github.com/goliatone/go-json2beamer/pkg/testsupport"
)

func TestOrchestrator_MergeOrdersByOriginalID(t *testing.T) {
	dir := t.TempDir()
	a := testsupport.WriteBank(t, dir, "a.json", `[
		{"id": 2, "type": "open", "prompt": "a2"},
		{"id": 1, "type": "open", "prompt": "a1"}
	]`)
	b := testsupport.WriteBank(t, dir, "b.json", `[{"id": 1, "type": "open", "prompt": "b1"}]`)

	records, err := orchestrator.New().Merge(testsupport.Context(), bank.SourcesFromFiles(a, b))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	type entry struct {
		ID     any
		Prompt any
	}
	var got []entry
	for _, record := range records {
		got = append(got, entry{ID: record["id"], Prompt: record["prompt"]})
	}
	want := []entry{
		{ID: float64(1), Prompt: "a1"},
		{ID: float64(2), Prompt: "b1"},
		{ID: float64(3), Prompt: "a2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged order mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_SeededGenerationIsReproducible(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteBank(t, dir, "quiz.json", `[{
		"id": 1, "type": "multiple_choice", "prompt": "Pick D",
		"answer_choices": ["A", "B", "C", "D"], "correct_answer": "D"
	}]`)

	orch := orchestrator.New()
	req := orchestrator.Request{
		Sources:  bank.SourcesFromFiles(path),
		Options:  model.GenerationOptions{ShuffleSeed: model.Seed(42)},
		Renderer: jsonkey.Name,
	}

	first, err := orch.Generate(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := orch.Generate(testsupport.Context(), req)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if string(again) != string(first) {
			t.Fatalf("seed 42 produced different output on run %d", i)
		}
	}

	var key struct {
		Questions []struct {
			Choices []struct {
				Label     string `json:"label"`
				Text      string `json:"text"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"answer_choices"`
			CorrectLabel string `json:"correct_label"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(first, &key); err != nil {
		t.Fatalf("decode answer key: %v", err)
	}
	question := key.Questions[0]
	for _, choice := range question.Choices {
		if choice.IsCorrect != (choice.Text == "D") {
			t.Fatalf("correctness not preserved: %+v", question.Choices)
		}
		if choice.IsCorrect && choice.Label != question.CorrectLabel {
			t.Fatalf("correct label %q does not match choice %+v", question.CorrectLabel, choice)
		}
	}
}

func TestOrchestrator_ReusedOrchestratorIsByteStable(t *testing.T) {
	bankData := testsupport.MustBank(t, "quiz.json", `[
		{"id": 1, "type": "multiple_choice", "prompt": "Pick **D**", "answer_choices": ["A", "B", "C", "D"], "correct_answer": "D", "explanation": "why"},
		{"id": 2, "type": "open", "prompt": "Name a !!prime!!", "correct_answer": "7"}
	]`)

	orch := orchestrator.New()
	for _, name := range orch.Renderers() {
		name := name
		t.Run(name, func(t *testing.T) {
			req := orchestrator.Request{
				Banks:        []bank.Bank{bankData},
				Options:      model.GenerationOptions{ShuffleSeed: model.Seed(42)},
				Renderer:     name,
				ThemeName:    "lecture",
				ThemeVariant: "dark",
			}
			first, err := orch.Generate(testsupport.Context(), req)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			second, err := orch.Generate(testsupport.Context(), req)
			if err != nil {
				t.Fatalf("generate again: %v", err)
			}
			if diff := cmp.Diff(string(first), string(second)); diff != "" {
				t.Fatalf("second run differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestOrchestrator_BeamerIsDefault(t *testing.T) {
	bankData := testsupport.MustBank(t, "inline.json", `[{"id": 1, "type": "open", "prompt": "50% of _x_"}]`)

	output, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{
		Banks: []bank.Bank{bankData},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc := string(output)
	if !strings.HasPrefix(doc, `\documentclass`) || !strings.Contains(doc, `50\% of \_x\_`) {
		t.Fatalf("unexpected document:\n%s", doc)
	}
}

func TestOrchestrator_UnseededKeepsContent(t *testing.T) {
	bankData := testsupport.MustBank(t, "inline.json", `[{
		"id": 1, "type": "mc", "prompt": "p", "answer_choices": ["w", "x", "y", "z"], "correct_answer": 0
	}]`)
	orch := orchestrator.New()

	for i := 0; i < 10; i++ {
		output, err := orch.Generate(testsupport.Context(), orchestrator.Request{
			Banks:    []bank.Bank{bankData},
			Renderer: jsonkey.Name,
		})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		for _, text := range []string{`"w"`, `"x"`, `"y"`, `"z"`, `"prompt": "p"`} {
			if !strings.Contains(string(output), text) {
				t.Fatalf("run %d lost %s:\n%s", i, text, output)
			}
		}
	}
}

func TestOrchestrator_FailuresMapToExitCodes(t *testing.T) {
	dir := t.TempDir()
	notArray := testsupport.WriteBank(t, dir, "object.json", `{"id": 1}`)
	noPrompt := testsupport.WriteBank(t, dir, "noprompt.json", `[{"id": 1, "type": "open"}]`)
	valid := testsupport.WriteBank(t, dir, "valid.json", `[{"id": 1, "type": "open", "prompt": "ok"}]`)

	cases := []struct {
		name string
		req  orchestrator.Request
		code int
	}{
		{
			name: "MissingFile",
			req:  orchestrator.Request{Sources: bank.SourcesFromFiles(valid, filepath.Join(dir, "missing.json"))},
			code: orchestrator.ExitNotFound,
		},
		{
			name: "NotAnArray",
			req:  orchestrator.Request{Sources: bank.SourcesFromFiles(notArray)},
			code: orchestrator.ExitSchema,
		},
		{
			name: "MissingPrompt",
			req:  orchestrator.Request{Sources: bank.SourcesFromFiles(valid, noPrompt)},
			code: orchestrator.ExitSchema,
		},
		{
			name: "BadOptions",
			req: orchestrator.Request{
				Sources: bank.SourcesFromFiles(valid),
				Options: model.GenerationOptions{AlertColor: "red"},
			},
			code: orchestrator.ExitSchema,
		},
		{
			name: "UnknownRenderer",
			req:  orchestrator.Request{Sources: bank.SourcesFromFiles(valid), Renderer: "pdf"},
			code: orchestrator.ExitFailure,
		},
		{
			name: "NoBanks",
			req:  orchestrator.Request{},
			code: orchestrator.ExitFailure,
		},
	}

	orch := orchestrator.New()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			output, err := orch.Generate(testsupport.Context(), tc.req)
			if err == nil {
				t.Fatalf("expected error")
			}
			if output != nil {
				t.Fatalf("expected no output on failure")
			}
			if got := orchestrator.ExitCode(err); got != tc.code {
				t.Fatalf("exit code: want %d, got %d (%v)", tc.code, got, err)
			}
		})
	}
}

func TestOrchestrator_MissingPromptNamesQuestion(t *testing.T) {
	bankData := testsupport.MustBank(t, "inline.json", `[{"id": 1, "type": "open", "prompt": "ok"}, {"id": 2, "type": "open"}]`)

	_, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{Banks: []bank.Bank{bankData}})
	var schemaErr *bank.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if schemaErr.QuestionID != 2 || schemaErr.Field != "prompt" {
		t.Fatalf("unexpected schema error %+v", schemaErr)
	}
	if !strings.HasPrefix(err.Error(), "orchestrator: validate questions:") {
		t.Fatalf("expected stage context, got %q", err.Error())
	}
}

func TestOrchestrator_SchemaErrorNamesOriginalSource(t *testing.T) {
	dir := t.TempDir()
	a := testsupport.WriteBank(t, dir, "a.json", `[{"id": 1, "type": "open", "prompt": "a1"}]`)
	b := testsupport.WriteBank(t, dir, "b.json", `[
		{"id": 4, "type": "open", "prompt": "b4"},
		{"id": 9, "type": "open"}
	]`)

	_, err := orchestrator.New().Generate(testsupport.Context(), orchestrator.Request{
		Sources: bank.SourcesFromFiles(a, b),
	})
	var schemaErr *bank.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
	type located struct {
		Source     string
		QuestionID int
		SourceID   int
		Field      string
	}
	got := located{filepath.Base(schemaErr.Source), schemaErr.QuestionID, schemaErr.SourceID, schemaErr.Field}
	want := located{Source: "b.json", QuestionID: 3, SourceID: 9, Field: "prompt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema error location mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), "(question 3, id 9 in source)") {
		t.Fatalf("expected both ids in message, got %q", err.Error())
	}
}

func TestOrchestrator_RenderErrorExitCode(t *testing.T) {
	failing := failingRenderer{err: &render.RenderError{QuestionID: 1, Field: "prompt", Message: "boom"}}
	orch := orchestrator.New(
		orchestrator.WithRegistry(render.NewRegistry(failing)),
		orchestrator.WithDefaultRenderer(failing.Name()),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Banks: []bank.Bank{testsupport.MustBank(t, "inline.json", `[{"id": 1, "type": "open", "prompt": "ok"}]`)},
	})
	if got := orchestrator.ExitCode(err); got != orchestrator.ExitRender {
		t.Fatalf("exit code: want %d, got %d (%v)", orchestrator.ExitRender, got, err)
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrator.New().Validate(ctx, bank.SourcesFromFiles("whatever.json"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_ValidateReturnsSet(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteBank(t, dir, "quiz.yaml", "- id: 5\n  type: open\n  prompt: \"  From YAML  \"\n")

	set, err := orchestrator.New().Validate(testsupport.Context(), bank.SourcesFromFiles(path))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(set) != 1 || set[0].ID != 1 || set[0].Prompt != "From YAML" {
		t.Fatalf("unexpected set %+v", set)
	}
}

func TestExitCode(t *testing.T) {
	cases := map[int]error{
		orchestrator.ExitOK:       nil,
		orchestrator.ExitNotFound: fmt.Errorf("wrap: %w", &bank.NotFoundError{Path: "x"}),
		orchestrator.ExitSchema:   &bank.SchemaError{Message: "bad"},
		orchestrator.ExitRender:   &render.RenderError{Message: "bad"},
		orchestrator.ExitFailure:  errors.New("other"),
	}
	for want, err := range cases {
		if got := orchestrator.ExitCode(err); got != want {
			t.Fatalf("ExitCode(%v): want %d, got %d", err, want, got)
		}
	}
}

type failingRenderer struct {
	err error
}

func (f failingRenderer) Name() string        { return "failing" }
func (f failingRenderer) ContentType() string { return "text/plain" }
func (f failingRenderer) Render(context.Context, model.QuestionSet, render.RenderOptions) ([]byte, error) {
	return nil, f.err
}

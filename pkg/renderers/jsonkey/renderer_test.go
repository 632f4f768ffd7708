package jsonkey_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/render"
	"github.com/goliatone/go-json2beamer/pkg/renderers/jsonkey"
)

func TestRenderer_AnswerKey(t *testing.T) {
	set := model.QuestionSet{
		{
			ID:      1,
			Type:    model.QuestionTypeMultipleChoice,
			Prompt:  "Pick <b>",
			Choices: []model.Choice{{Text: "x"}, {Text: "y", Correct: true}},
			Correct: 1,
		},
		{ID: 2, Type: model.QuestionTypeOpen, Prompt: "Why?", Correct: -1, Answer: "because"},
	}

	output, err := jsonkey.New().Render(context.Background(), set, render.RenderOptions{
		Generation: model.GenerationOptions{ShuffleSeed: model.Seed(42)},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(output, &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, output)
	}

	want := map[string]any{
		"title":        "Questions",
		"shuffle_seed": float64(42),
		"questions": []any{
			map[string]any{
				"id":     float64(1),
				"type":   "multiple_choice",
				"prompt": "Pick <b>",
				"answer_choices": []any{
					map[string]any{"label": "A", "text": "x", "is_correct": false},
					map[string]any{"label": "B", "text": "y", "is_correct": true},
				},
				"correct_label": "B",
			},
			map[string]any{
				"id":             float64(2),
				"type":           "open",
				"prompt":         "Why?",
				"correct_answer": "because",
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("answer key mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_MissingCorrectChoice(t *testing.T) {
	set := model.QuestionSet{{ID: 3, Type: model.QuestionTypeMultipleChoice, Prompt: "p", Choices: []model.Choice{{Text: "a"}}, Correct: -1}}

	_, err := jsonkey.New().Render(context.Background(), set, render.RenderOptions{})
	var renderErr *render.RenderError
	if !errors.As(err, &renderErr) || renderErr.QuestionID != 3 {
		t.Fatalf("expected render error for question 3, got %v", err)
	}
}

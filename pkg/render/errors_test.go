package render_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-json2beamer/pkg/markup"
	"github.com/goliatone/go-json2beamer/pkg/render"
)

func TestRenderError_Message(t *testing.T) {
	cases := []struct {
		name string
		err  *render.RenderError
		want string
	}{
		{
			name: "QuestionAndField",
			err:  &render.RenderError{QuestionID: 3, Field: "prompt", Message: "unclosed ** marker"},
			want: "render: question 3: prompt unclosed ** marker",
		},
		{
			name: "DocumentLevel",
			err:  &render.RenderError{Message: "template failed"},
			want: "render: template failed",
		},
		{
			name: "FromCause",
			err:  &render.RenderError{Field: "title", Err: errors.New("boom")},
			want: "render: title boom",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Fatalf("message: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRenderError_UnwrapsThroughStages(t *testing.T) {
	cause := &markup.Error{Offset: 2, Message: "unclosed ** marker"}
	wrapped := fmt.Errorf("orchestrator: render output: %w", &render.RenderError{QuestionID: 1, Err: cause})

	var renderErr *render.RenderError
	if !errors.As(wrapped, &renderErr) {
		t.Fatalf("expected RenderError in chain")
	}
	var markupErr *markup.Error
	if !errors.As(wrapped, &markupErr) {
		t.Fatalf("expected markup error to remain reachable")
	}
}

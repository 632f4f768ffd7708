package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

func TestWithDefaults_FillsBlankFields(t *testing.T) {
	got := GenerationOptions{Title: "  ", AlertColor: ""}.WithDefaults()
	if diff := cmp.Diff(DefaultGenerationOptions(), got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestWithDefaults_CopiesSeed(t *testing.T) {
	seed := int64(42)
	in := GenerationOptions{ShuffleSeed: &seed}
	out := in.WithDefaults()
	if out.ShuffleSeed == in.ShuffleSeed {
		t.Fatalf("expected seed pointer to be copied")
	}
	*out.ShuffleSeed = 7
	if seed != 42 {
		t.Fatalf("input seed mutated: %d", seed)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		opts  GenerationOptions
		field string
	}{
		{name: "Defaults", opts: DefaultGenerationOptions()},
		{name: "BackslashSize", opts: GenerationOptions{Title: "T", QuestionFontSize: `\Huge`, AnswerFontSize: "small", AlertColor: "0a0"}},
		{name: "BlankTitle", opts: GenerationOptions{Title: "", QuestionFontSize: "large", AnswerFontSize: "small", AlertColor: "#FF0000"}, field: "title"},
		{name: "BadQuestionSize", opts: GenerationOptions{Title: "T", QuestionFontSize: "gigantic", AnswerFontSize: "small", AlertColor: "#FF0000"}, field: "question_font_size"},
		{name: "CaseMatters", opts: GenerationOptions{Title: "T", QuestionFontSize: "large", AnswerFontSize: "SMALL", AlertColor: "#FF0000"}, field: "answer_font_size"},
		{name: "BadColor", opts: GenerationOptions{Title: "T", QuestionFontSize: "large", AnswerFontSize: "small", AlertColor: "red"}, field: "alert_color"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var schemaErr *bank.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if schemaErr.Field != tc.field || schemaErr.Source != "options" {
				t.Fatalf("unexpected error target: %+v", schemaErr)
			}
		})
	}
}

func TestNormalizeHexColor(t *testing.T) {
	cases := map[string]string{
		"#ff0000": "FF0000",
		"00FF00":  "00FF00",
		"#abc":    "AABBCC",
		" 123 ":   "112233",
	}
	for in, want := range cases {
		got, err := NormalizeHexColor(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: want %q, got %q", in, want, got)
		}
	}

	for _, bad := range []string{"", "#12", "#GGGGGG", "#1234567"} {
		if _, err := NormalizeHexColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestAlertHex(t *testing.T) {
	if got := (GenerationOptions{AlertColor: "#0f0"}).AlertHex(); got != "00FF00" {
		t.Fatalf("unexpected hex %q", got)
	}
	if got := (GenerationOptions{AlertColor: "nope"}).AlertHex(); got != "" {
		t.Fatalf("expected empty hex for invalid color, got %q", got)
	}
}

func TestParseFontSize(t *testing.T) {
	size, err := ParseFontSize(` \footnotesize `)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if size != FontSizeFootnoteSize || size.Command() != `\footnotesize` {
		t.Fatalf("unexpected size %q (%s)", size, size.Command())
	}
	if _, err := ParseFontSize("large2"); err == nil {
		t.Fatalf("expected error for unknown size")
	}
	if got := FontSize(`\LARGE`).Command(); got != `\LARGE` {
		t.Fatalf("command doubled the backslash: %s", got)
	}
	if len(FontSizes()) != 10 {
		t.Fatalf("expected ten sizes, got %d", len(FontSizes()))
	}
}

package markup

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_NestedSpans(t *testing.T) {
	nodes, err := Parse("a **b !!c!! d** e")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []Node{
		{Kind: KindText, Text: "a "},
		{Kind: KindBold, Children: []Node{
			{Kind: KindText, Text: "b "},
			{Kind: KindAlert, Children: []Node{{Kind: KindText, Text: "c"}}},
			{Kind: KindText, Text: " d"},
		}},
		{Kind: KindText, Text: " e"},
	}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
	if got := Plain(nodes); got != "a b c d e" {
		t.Fatalf("plain: got %q", got)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"unclosed":    "a **b",
		"overlapping": "**a !!b** c!!",
		"control":     "bell \a here",
	}

	for name, input := range cases {
		input := input
		t.Run(name, func(t *testing.T) {
			_, err := Parse(input)
			var markupErr *Error
			if !errors.As(err, &markupErr) {
				t.Fatalf("expected *markup.Error, got %v", err)
			}
		})
	}
}

func TestParse_EscapedMarkersAreLiteral(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  []Node
		plain string
	}{
		{
			name:  "DoubleFactorial",
			in:    `What is 5\!\!?`,
			want:  []Node{{Kind: KindText, Text: "What is 5!!?"}},
			plain: "What is 5!!?",
		},
		{
			name:  "Power",
			in:    `Python 2\*\*10`,
			want:  []Node{{Kind: KindText, Text: "Python 2**10"}},
			plain: "Python 2**10",
		},
		{
			name: "InsideSpan",
			in:   `**2\*\*10** is !!1024!!`,
			want: []Node{
				{Kind: KindBold, Children: []Node{{Kind: KindText, Text: "2**10"}}},
				{Kind: KindText, Text: " is "},
				{Kind: KindAlert, Children: []Node{{Kind: KindText, Text: "1024"}}},
			},
			plain: "2**10 is 1024",
		},
		{
			name:  "LoneBackslashStays",
			in:    `a\b \* c`,
			want:  []Node{{Kind: KindText, Text: `a\b \* c`}},
			plain: `a\b \* c`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, nodes); diff != "" {
				t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
			}
			if got := Plain(nodes); got != tc.plain {
				t.Fatalf("plain: want %q, got %q", tc.plain, got)
			}
		})
	}
}

func TestValidate_EscapedMarkerDoesNotOpenSpan(t *testing.T) {
	if err := Validate(`\!\!only one`); err != nil {
		t.Fatalf("escaped alert marker should not open a span: %v", err)
	}
	if err := Validate(`!!only one`); err == nil {
		t.Fatalf("expected unclosed span error")
	}
}

func TestParse_PlainTextUntouched(t *testing.T) {
	nodes, err := Parse("100% of {braces} and single * or ! stay\nnext line")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Kind != KindText {
		t.Fatalf("expected single text node, got %+v", nodes)
	}
}

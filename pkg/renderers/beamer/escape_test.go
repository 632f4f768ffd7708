package beamer

import (
	"errors"
	"testing"

	"github.com/goliatone/go-json2beamer/pkg/markup"
)

func TestEscape(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "Plain", in: "What is 2+2?", want: "What is 2+2?"},
		{name: "Reserved", in: `50% & #1 a_b $x$ {y}`, want: `50\% \& \#1 a\_b \$x\$ \{y\}`},
		{name: "Backslash", in: `C:\dir`, want: `C:\textbackslash{}dir`},
		{name: "CaretTilde", in: "x^2 ~ y", want: `x\^{}2 \textasciitilde{} y`},
		{name: "Newline", in: "one\ntwo", want: `one\newline{}two`},
		{name: "Bold", in: "a **b_c** d", want: `a \textbf{b\_c} d`},
		{name: "Alert", in: "!!careful!!", want: `\alert{careful}`},
		{name: "Nested", in: "**bold !!hot!!**", want: `\textbf{bold \alert{hot}}`},
		{name: "Unicode", in: "naïve café", want: "naïve café"},
		{name: "EscapedAlert", in: `What is 5\!\!?`, want: "What is 5!!?"},
		{name: "EscapedBold", in: `Python 2\*\*10`, want: "Python 2**10"},
		{name: "EscapedInsideSpan", in: `!!2\*\*10 \& more!!`, want: `\alert{2**10 \textbackslash{}\& more}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Escape(tc.in)
			if err != nil {
				t.Fatalf("escape: %v", err)
			}
			if got != tc.want {
				t.Fatalf("escape %q:\nwant %q\n got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestEscape_Errors(t *testing.T) {
	for _, in := range []string{"**open", "**a !!b** c!!", "bell\a"} {
		_, err := Escape(in)
		var markupErr *markup.Error
		if !errors.As(err, &markupErr) {
			t.Fatalf("escape %q: expected markup error, got %v", in, err)
		}
	}
}

func TestEscapePlain_IgnoresMarkers(t *testing.T) {
	if got := EscapePlain("**x**_"); got != `**x**\_` {
		t.Fatalf("unexpected plain escape %q", got)
	}
}

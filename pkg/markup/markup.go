// Package markup parses the inline rich-text markers allowed in question text:
// **bold** and !!alert!!. Spans may nest but must not overlap and must be
// closed. A literal delimiter is written \*\* or \!\!. Renderers translate
// the resulting tree into their own syntax.
package markup

import (
	"fmt"
	"strings"
	"unicode"
)

// Marker delimiters recognised in question text, and their escaped forms.
const (
	BoldMarker  = "**"
	AlertMarker = "!!"

	EscapedBoldMarker  = `\*\*`
	EscapedAlertMarker = `\!\!`
)

// Kind identifies a node in the parsed tree.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindAlert
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindAlert:
		return "alert"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a text run or a marked span.
type Node struct {
	Kind     Kind
	Text     string
	Children []Node
}

// Error reports a malformed marker sequence or a forbidden character.
type Error struct {
	Offset  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("markup: %s at byte %d", e.Message, e.Offset)
}

type frame struct {
	kind   Kind
	offset int
	nodes  []Node
}

// Parse splits text into a tree of text runs and marked spans.
func Parse(text string) ([]Node, error) {
	if err := CheckCharacters(text); err != nil {
		return nil, err
	}

	stack := []frame{{kind: KindText}}
	var run strings.Builder

	flush := func() {
		if run.Len() == 0 {
			return
		}
		top := &stack[len(stack)-1]
		top.nodes = append(top.nodes, Node{Kind: KindText, Text: run.String()})
		run.Reset()
	}

	for i := 0; i < len(text); {
		tok, ok := markerAt(text, i)
		if !ok {
			run.WriteByte(text[i])
			i++
			continue
		}
		if tok.kind == KindText {
			run.WriteString(tok.literal)
			i += tok.width
			continue
		}
		flush()
		kind := tok.kind

		top := stack[len(stack)-1]
		switch {
		case top.kind == kind:
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.nodes = append(parent.nodes, Node{Kind: kind, Children: top.nodes})
		case isOpen(stack, kind):
			return nil, &Error{Offset: i, Message: fmt.Sprintf("%s span closes across an open %s span", kind, top.kind)}
		default:
			stack = append(stack, frame{kind: kind, offset: i})
		}
		i += tok.width
	}
	flush()

	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return nil, &Error{Offset: open.offset, Message: fmt.Sprintf("unclosed %s span", open.kind)}
	}
	return stack[0].nodes, nil
}

// Validate reports whether text parses without error.
func Validate(text string) error {
	_, err := Parse(text)
	return err
}

// CheckCharacters rejects control characters other than newline and tab.
func CheckCharacters(text string) error {
	for i, r := range text {
		if r == '\n' || r == '\t' {
			continue
		}
		if r == unicode.ReplacementChar && !strings.HasPrefix(text[i:], string(unicode.ReplacementChar)) {
			return &Error{Offset: i, Message: "invalid UTF-8 sequence"}
		}
		if unicode.IsControl(r) {
			return &Error{Offset: i, Message: fmt.Sprintf("control character %U", r)}
		}
	}
	return nil
}

// Plain returns the text with every marker removed.
func Plain(nodes []Node) string {
	var b strings.Builder
	writePlain(&b, nodes)
	return b.String()
}

func writePlain(b *strings.Builder, nodes []Node) {
	for _, node := range nodes {
		if node.Kind == KindText {
			b.WriteString(node.Text)
			continue
		}
		writePlain(b, node.Children)
	}
}

type token struct {
	kind    Kind
	width   int
	literal string
}

// markerAt reports the delimiter starting at text[i]. Escaped delimiters come
// back as KindText carrying the literal marker.
func markerAt(text string, i int) (token, bool) {
	rest := text[i:]
	switch {
	case strings.HasPrefix(rest, EscapedBoldMarker):
		return token{kind: KindText, width: len(EscapedBoldMarker), literal: BoldMarker}, true
	case strings.HasPrefix(rest, EscapedAlertMarker):
		return token{kind: KindText, width: len(EscapedAlertMarker), literal: AlertMarker}, true
	case strings.HasPrefix(rest, BoldMarker):
		return token{kind: KindBold, width: len(BoldMarker)}, true
	case strings.HasPrefix(rest, AlertMarker):
		return token{kind: KindAlert, width: len(AlertMarker)}, true
	default:
		return token{}, false
	}
}

func isOpen(stack []frame, kind Kind) bool {
	for _, f := range stack[1:] {
		if f.kind == kind {
			return true
		}
	}
	return false
}

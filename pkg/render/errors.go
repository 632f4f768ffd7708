package render

import (
	"fmt"
	"strings"
)

// RenderError reports a defect that prevents a question from being emitted as
// a well-formed document, such as unbalanced markup.
type RenderError struct {
	// QuestionID is zero when the defect is not tied to a question.
	QuestionID int
	Field      string
	Message    string
	Err        error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("render: ")
	if e.QuestionID != 0 {
		fmt.Fprintf(&b, "question %d: ", e.QuestionID)
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteByte(' ')
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "failed"
	}
	b.WriteString(msg)
	return b.String()
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

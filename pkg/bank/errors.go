package bank

import (
	"fmt"
	"strings"
)

// NotFoundError reports a referenced input that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bank: input not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// SchemaError reports malformed JSON, a wrong top-level shape, a record that
// fails its required-field or invariant checks, or invalid generation options.
// QuestionID is zero when the offending question is not known. After a
// merge QuestionID is the renumbered id and SourceID the id the question has
// in Source.
type SchemaError struct {
	Source     string
	QuestionID int
	SourceID   int
	Field      string
	Message    string
	Err        error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("bank: schema error")
	if e.Source != "" {
		b.WriteString(" in ")
		b.WriteString(e.Source)
	}
	switch {
	case e.QuestionID != 0 && e.SourceID != 0 && e.SourceID != e.QuestionID:
		fmt.Fprintf(&b, " (question %d, id %d in source)", e.QuestionID, e.SourceID)
	case e.QuestionID != 0:
		fmt.Fprintf(&b, " (question %d)", e.QuestionID)
	}
	b.WriteString(": ")
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(" ")
	}
	b.WriteString(e.Message)
	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

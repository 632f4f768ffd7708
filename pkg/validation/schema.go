package validation

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

// Record field names.
const (
	fieldID            = "id"
	fieldType          = "type"
	fieldPrompt        = "prompt"
	fieldChoices       = "answer_choices"
	fieldCorrectAnswer = "correct_answer"
	fieldExplanation   = "explanation"
	fieldChoiceText    = "text"
	fieldChoiceCorrect = "is_correct"
)

var (
	recordSchemaOnce sync.Once
	recordSchemaVal  *openapi3.Schema
)

// recordSchema describes the value types of a bank record. Required fields are
// checked in Go so the error names the field the way authors wrote it.
func recordSchema() *openapi3.Schema {
	recordSchemaOnce.Do(func() {
		choiceObject := openapi3.NewObjectSchema().
			WithProperty(fieldChoiceText, openapi3.NewStringSchema()).
			WithProperty(fieldChoiceCorrect, openapi3.NewBoolSchema())
		choiceObject.Required = []string{fieldChoiceText}

		choice := openapi3.NewOneOfSchema(openapi3.NewStringSchema(), choiceObject)

		recordSchemaVal = openapi3.NewObjectSchema().
			WithProperty(fieldID, openapi3.NewIntegerSchema()).
			WithProperty(fieldType, openapi3.NewStringSchema()).
			WithProperty(fieldPrompt, openapi3.NewStringSchema()).
			WithProperty(fieldChoices, openapi3.NewArraySchema().WithItems(choice)).
			WithProperty(fieldCorrectAnswer, openapi3.NewOneOfSchema(
				openapi3.NewStringSchema(),
				openapi3.NewIntegerSchema(),
			)).
			WithProperty(fieldExplanation, openapi3.NewStringSchema())
	})
	return recordSchemaVal
}

// checkShape validates value types. Null optional fields are treated as absent.
func checkShape(id int, record bank.Record) error {
	value := make(map[string]any, len(record))
	for key, v := range record {
		if v == nil {
			continue
		}
		value[key] = v
	}

	err := recordSchema().VisitJSON(value)
	if err == nil {
		return nil
	}

	issue := &bank.SchemaError{QuestionID: id, Message: strings.TrimSpace(err.Error()), Err: err}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		issue.Field = fieldPath(schemaErr.JSONPointer())
		if reason := strings.TrimSpace(schemaErr.Reason); reason != "" {
			issue.Message = reason
		}
	}
	return issue
}

// fieldPath renders a JSON pointer as answer_choices[1].text.
func fieldPath(pointer []string) string {
	var b strings.Builder
	for _, segment := range pointer {
		if segment == "" {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			b.WriteString("[" + segment + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(segment)
	}
	return b.String()
}

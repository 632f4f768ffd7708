package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

// FontSize is one of the LaTeX relative font size commands.
type FontSize string

const (
	FontSizeTiny         FontSize = "tiny"
	FontSizeScriptSize   FontSize = "scriptsize"
	FontSizeFootnoteSize FontSize = "footnotesize"
	FontSizeSmall        FontSize = "small"
	FontSizeNormalSize   FontSize = "normalsize"
	FontSizeLarge        FontSize = "large"
	FontSizeLarge2       FontSize = "Large"
	FontSizeLarge3       FontSize = "LARGE"
	FontSizeHuge         FontSize = "huge"
	FontSizeHuge2        FontSize = "Huge"
)

var fontSizes = []FontSize{
	FontSizeTiny,
	FontSizeScriptSize,
	FontSizeFootnoteSize,
	FontSizeSmall,
	FontSizeNormalSize,
	FontSizeLarge,
	FontSizeLarge2,
	FontSizeLarge3,
	FontSizeHuge,
	FontSizeHuge2,
}

// FontSizes lists the accepted sizes from smallest to largest.
func FontSizes() []FontSize {
	return append([]FontSize(nil), fontSizes...)
}

// ParseFontSize accepts a size name with or without the leading backslash.
// Matching is case-sensitive because LaTeX distinguishes large/Large/LARGE.
func ParseFontSize(raw string) (FontSize, error) {
	name := strings.TrimPrefix(strings.TrimSpace(raw), `\`)
	for _, size := range fontSizes {
		if string(size) == name {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown font size %q", raw)
}

// Command returns the LaTeX command selecting the size, e.g. `\Large`.
func (s FontSize) Command() string {
	return `\` + strings.TrimPrefix(string(s), `\`)
}

const (
	DefaultTitle            = "Questions"
	DefaultQuestionFontSize = FontSizeLarge
	DefaultAnswerFontSize   = FontSizeNormalSize
	DefaultAlertColor       = "#FF0000"
)

// GenerationOptions configures one deck. It is a value type; the pipeline
// never mutates it.
type GenerationOptions struct {
	Title            string   `json:"title"`
	QuestionFontSize FontSize `json:"question_font_size"`
	AnswerFontSize   FontSize `json:"answer_font_size"`
	AlertColor       string   `json:"alert_color"`
	// ShuffleSeed makes answer arrangement reproducible. Nil means every run
	// draws a fresh arrangement.
	ShuffleSeed *int64 `json:"shuffle_seed,omitempty"`
}

// DefaultGenerationOptions returns the documented defaults with no seed.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Title:            DefaultTitle,
		QuestionFontSize: DefaultQuestionFontSize,
		AnswerFontSize:   DefaultAnswerFontSize,
		AlertColor:       DefaultAlertColor,
	}
}

// Seed is a convenience for building a ShuffleSeed pointer.
func Seed(v int64) *int64 {
	return &v
}

// WithDefaults returns a copy where blank fields take their default value.
func (o GenerationOptions) WithDefaults() GenerationOptions {
	out := o
	if strings.TrimSpace(out.Title) == "" {
		out.Title = DefaultTitle
	}
	if strings.TrimSpace(string(out.QuestionFontSize)) == "" {
		out.QuestionFontSize = DefaultQuestionFontSize
	}
	if strings.TrimSpace(string(out.AnswerFontSize)) == "" {
		out.AnswerFontSize = DefaultAnswerFontSize
	}
	if strings.TrimSpace(out.AlertColor) == "" {
		out.AlertColor = DefaultAlertColor
	}
	if o.ShuffleSeed != nil {
		out.ShuffleSeed = Seed(*o.ShuffleSeed)
	}
	return out
}

// Validate checks sizes and the alert color, returning a *bank.SchemaError
// naming the offending option.
func (o GenerationOptions) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return optionError("title", "is required")
	}
	if _, err := ParseFontSize(string(o.QuestionFontSize)); err != nil {
		return optionError("question_font_size", err.Error())
	}
	if _, err := ParseFontSize(string(o.AnswerFontSize)); err != nil {
		return optionError("answer_font_size", err.Error())
	}
	if _, err := NormalizeHexColor(o.AlertColor); err != nil {
		return optionError("alert_color", err.Error())
	}
	return nil
}

// AlertHex returns the alert color as six uppercase hex digits, the form the
// xcolor HTML model expects. Call Validate first.
func (o GenerationOptions) AlertHex() string {
	hex, err := NormalizeHexColor(o.AlertColor)
	if err != nil {
		return ""
	}
	return hex
}

// NormalizeHexColor accepts #RRGGBB, RRGGBB, #RGB or RGB and returns RRGGBB in
// upper case.
func NormalizeHexColor(raw string) (string, error) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	if len(value) != 6 {
		return "", fmt.Errorf("invalid hex color %q", raw)
	}
	for _, c := range value {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", fmt.Errorf("invalid hex color %q", raw)
		}
	}
	return strings.ToUpper(value), nil
}

func optionError(field, message string) error {
	return &bank.SchemaError{Source: "options", Field: field, Message: message}
}

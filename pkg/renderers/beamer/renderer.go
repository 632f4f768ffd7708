package beamer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"

	"github.com/goliatone/go-json2beamer/pkg/markup"
	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/render"
	rendertemplate "github.com/goliatone/go-json2beamer/pkg/render/template"
	gotemplate "github.com/goliatone/go-json2beamer/pkg/render/template/gotemplate"
)

// Name is the registry name of the Beamer renderer.
const Name = "beamer"

const deckTemplate = "templates/deck.tmpl"

// Theme tokens read from the selected go-theme manifest.
const (
	TokenTheme       = "beamer.theme"
	TokenColorTheme  = "beamer.colortheme"
	TokenFontTheme   = "beamer.fonttheme"
	TokenAspectRatio = "beamer.aspectratio"
	TokenNavigation  = "beamer.navigation"
	TokenAlertColor  = "beamer.alert"
)

const (
	defaultBeamerTheme = "default"
	defaultAspectRatio = "169"
)

var themeIdent = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// contain templates/deck.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the Beamer renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("beamer renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if err := registerFilters(renderer); err != nil {
		return nil, fmt.Errorf("beamer renderer: register filters: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/x-latex; charset=utf-8"
}

// Render emits the deck. Any markup defect is reported as *render.RenderError
// naming the question and field.
func (r *Renderer) Render(_ context.Context, set model.QuestionSet, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("beamer renderer: template renderer is nil")
	}

	deck, err := buildDeck(set, options)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(deckTemplate, map[string]any{
		"deck": deck,
	})
	if err != nil {
		return nil, &render.RenderError{Message: "execute deck template", Err: err}
	}
	return []byte(result), nil
}

type deckView struct {
	Title          string         `json:"title"`
	PlainTitle     string         `json:"plain_title"`
	ClassOptions   string         `json:"class_options"`
	Theme          string         `json:"theme"`
	ColorTheme     string         `json:"color_theme"`
	FontTheme      string         `json:"font_theme"`
	HideNavigation bool           `json:"hide_navigation"`
	AlertHex       string         `json:"alert_hex"`
	QuestionSize   string         `json:"question_size"`
	AnswerSize     string         `json:"answer_size"`
	Questions      []questionView `json:"questions"`
}

type questionView struct {
	Number      string       `json:"number"`
	FrameTitle  string       `json:"frame_title"`
	Prompt      string       `json:"prompt"`
	Choices     []choiceView `json:"choices"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation"`
}

type choiceView struct {
	Label   string `json:"label"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

func buildDeck(set model.QuestionSet, options render.RenderOptions) (deckView, error) {
	gen := options.Generation
	if gen.AlertColor == "" {
		gen.AlertColor = options.Token(TokenAlertColor, "")
	}
	gen = gen.WithDefaults()
	if err := gen.Validate(); err != nil {
		return deckView{}, &render.RenderError{Field: "options", Message: err.Error(), Err: err}
	}

	title, err := Escape(gen.Title)
	if err != nil {
		return deckView{}, &render.RenderError{Field: "title", Message: err.Error(), Err: err}
	}

	nodes, _ := markup.Parse(gen.Title)

	deck := deckView{
		Title:          title,
		PlainTitle:     markup.Plain(nodes),
		Theme:          themeToken(options, TokenTheme, defaultBeamerTheme),
		ColorTheme:     themeToken(options, TokenColorTheme, ""),
		FontTheme:      themeToken(options, TokenFontTheme, ""),
		HideNavigation: options.Token(TokenNavigation, "hide") == "hide",
		AlertHex:       gen.AlertHex(),
		QuestionSize:   gen.QuestionFontSize.Command(),
		AnswerSize:     gen.AnswerFontSize.Command(),
		Questions:      make([]questionView, 0, len(set)),
	}
	if ratio := themeToken(options, TokenAspectRatio, defaultAspectRatio); ratio != "" {
		deck.ClassOptions = "aspectratio=" + ratio
	}

	for _, question := range set {
		view, err := buildQuestion(question)
		if err != nil {
			return deckView{}, err
		}
		deck.Questions = append(deck.Questions, view)
	}
	return deck, nil
}

func buildQuestion(q model.Question) (questionView, error) {
	fail := func(field string, err error) (questionView, error) {
		return questionView{}, &render.RenderError{QuestionID: q.ID, Field: field, Message: err.Error(), Err: err}
	}

	number := strconv.Itoa(q.ID)
	view := questionView{
		Number:     number,
		FrameTitle: "Question " + number,
	}

	var err error
	if view.Prompt, err = Escape(q.Prompt); err != nil {
		return fail("prompt", err)
	}
	if view.Explanation, err = Escape(q.Explanation); err != nil {
		return fail("explanation", err)
	}
	if view.Answer, err = Escape(q.Answer); err != nil {
		return fail("correct_answer", err)
	}

	if !q.IsMultipleChoice() {
		return view, nil
	}
	if _, ok := q.CorrectChoice(); !ok {
		return fail("correct_answer", errors.New("no correct choice"))
	}
	for i, choice := range q.Choices {
		text, err := Escape(choice.Text)
		if err != nil {
			return fail(fmt.Sprintf("answer_choices[%d]", i), err)
		}
		view.Choices = append(view.Choices, choiceView{
			Label:   model.ChoiceLabel(i),
			Text:    text,
			Correct: i == q.Correct,
		})
	}
	return view, nil
}

// themeToken returns a theme token usable as a LaTeX package argument; tokens
// with anything other than letters, digits and dashes fall back.
func themeToken(options render.RenderOptions, key, fallback string) string {
	value := options.Token(key, fallback)
	if value == "" || !themeIdent.MatchString(value) {
		return fallback
	}
	return value
}

func registerFilters(renderer rendertemplate.TemplateRenderer) error {
	filters := map[string]func(input any, param any) (any, error){
		"texgroup":  filterGroup,
		"texescape": filterEscape,
	}
	for _, name := range []string{"texgroup", "texescape"} {
		err := renderer.RegisterFilter(name, filters[name])
		if err != nil && !errors.Is(err, gotemplate.ErrFilterExists) {
			return err
		}
	}
	return nil
}

// filterGroup wraps a value in braces so templates can write \cmd{{ x|texgroup }}
// instead of the ambiguous triple brace.
func filterGroup(input any, _ any) (any, error) {
	return "{" + stringify(input) + "}", nil
}

func filterEscape(input any, _ any) (any, error) {
	return EscapePlain(stringify(input)), nil
}

func stringify(input any) string {
	switch v := input.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Package preview renders a question set as a standalone HTML page that
// mirrors the deck layout, one section per slide, for checking a bank in a
// browser without a LaTeX toolchain.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/goliatone/go-json2beamer/pkg/markup"
	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/render"
	rendertemplate "github.com/goliatone/go-json2beamer/pkg/render/template"
	gotemplate "github.com/goliatone/go-json2beamer/pkg/render/template/gotemplate"
	"github.com/goliatone/go-json2beamer/pkg/renderers/beamer"
)

// Name is the registry name of the preview renderer.
const Name = "preview"

const previewTemplate = "templates/preview.tmpl"

// fontScale maps LaTeX sizes onto CSS font sizes.
var fontScale = map[model.FontSize]string{
	model.FontSizeTiny:         "0.5em",
	model.FontSizeScriptSize:   "0.7em",
	model.FontSizeFootnoteSize: "0.8em",
	model.FontSizeSmall:        "0.9em",
	model.FontSizeNormalSize:   "1em",
	model.FontSizeLarge:        "1.2em",
	model.FontSizeLarge2:       "1.44em",
	model.FontSizeLarge3:       "1.73em",
	model.FontSizeHuge:         "2.07em",
	model.FontSizeHuge2:        "2.49em",
}

var aspectRatios = map[string]string{
	"169":  "16 / 9",
	"1610": "16 / 10",
	"149":  "14 / 9",
	"54":   "5 / 4",
	"43":   "4 / 3",
	"32":   "3 / 2",
}

var (
	cssVarName  = regexp.MustCompile(`^--[A-Za-z0-9-]+$`)
	cssVarValue = regexp.MustCompile(`^[#A-Za-z0-9 .,%()-]+$`)
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
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

// New constructs the preview renderer applying any provided options.
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
			return nil, fmt.Errorf("preview renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, set model.QuestionSet, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("preview renderer: template renderer is nil")
	}

	page, err := buildPage(set, options)
	if err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(previewTemplate, map[string]any{
		"deck": page,
	})
	if err != nil {
		return nil, &render.RenderError{Message: "execute preview template", Err: err}
	}
	return []byte(result), nil
}

type pageView struct {
	Title         string         `json:"title"`
	PlainTitle    string         `json:"plain_title"`
	Aspect        string         `json:"aspect"`
	QuestionScale string         `json:"question_scale"`
	AnswerScale   string         `json:"answer_scale"`
	CSSVars       []cssVar       `json:"css_vars"`
	Questions     []questionView `json:"questions"`
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
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
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

func buildPage(set model.QuestionSet, options render.RenderOptions) (pageView, error) {
	gen := options.Generation
	if gen.AlertColor == "" {
		gen.AlertColor = options.Token(beamer.TokenAlertColor, "")
	}
	gen = gen.WithDefaults()
	if err := gen.Validate(); err != nil {
		return pageView{}, &render.RenderError{Field: "options", Message: err.Error(), Err: err}
	}

	title, err := Escape(gen.Title)
	if err != nil {
		return pageView{}, &render.RenderError{Field: "title", Message: err.Error(), Err: err}
	}
	nodes, _ := markup.Parse(gen.Title)

	aspect, ok := aspectRatios[options.Token(beamer.TokenAspectRatio, "169")]
	if !ok {
		aspect = aspectRatios["169"]
	}

	page := pageView{
		Title:         title,
		PlainTitle:    markup.Plain(nodes),
		Aspect:        aspect,
		QuestionScale: fontScale[gen.QuestionFontSize],
		AnswerScale:   fontScale[gen.AnswerFontSize],
		CSSVars:       cssVars(options, "#"+gen.AlertHex()),
		Questions:     make([]questionView, 0, len(set)),
	}

	for _, question := range set {
		view, err := buildQuestion(question)
		if err != nil {
			return pageView{}, err
		}
		page.Questions = append(page.Questions, view)
	}
	return page, nil
}

// cssVars lists the theme variables in name order plus --alert-color.
// Variables with names or values outside a conservative charset are dropped.
func cssVars(options render.RenderOptions, alert string) []cssVar {
	vars := []cssVar{{Name: "--alert-color", Value: alert}}
	if options.Theme == nil {
		return vars
	}
	names := make([]string, 0, len(options.Theme.CSSVars))
	for name := range options.Theme.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := options.Theme.CSSVars[name]
		if name == "--alert-color" || !cssVarName.MatchString(name) || !cssVarValue.MatchString(value) {
			continue
		}
		vars = append(vars, cssVar{Name: name, Value: value})
	}
	return vars
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
		view.Choices = append(view.Choices, choiceView{Text: text, Correct: i == q.Correct})
	}
	return view, nil
}

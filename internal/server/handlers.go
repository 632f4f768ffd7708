package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-json2beamer/pkg/bank"
	"github.com/goliatone/go-json2beamer/pkg/model"
	"github.com/goliatone/go-json2beamer/pkg/orchestrator"
	"github.com/goliatone/go-json2beamer/pkg/render"
	"github.com/goliatone/go-json2beamer/pkg/themes"
)

// BankPayload is one inline question bank.
type BankPayload struct {
	Name      string          `json:"name"`
	Questions json.RawMessage `json:"questions"`
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	Banks      []BankPayload           `json:"banks"`
	Options    model.GenerationOptions `json:"options"`
	Renderer   string                  `json:"renderer,omitempty"`
	Theme      string                  `json:"theme,omitempty"`
	Variant    string                  `json:"variant,omitempty"`
	HTMLMarkup bool                    `json:"html_markup,omitempty"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind"`
	QuestionID int    `json:"question_id,omitempty"`
	Field      string `json:"field,omitempty"`

	// Source and SourceQuestionID locate a schema error in the bank the
	// client sent; QuestionID is the merged id.
	Source           string `json:"source,omitempty"`
	SourceQuestionID int    `json:"source_question_id,omitempty"`
}

// Error kinds reported in ErrorResponse.Kind.
const (
	KindBadRequest = "bad_request"
	KindNotFound   = "not_found"
	KindSchema     = "schema"
	KindRender     = "render"
	KindInternal   = "internal"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listThemes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default": s.catalog.Default(),
		"themes":  s.catalog.List(),
	})
}

func (s *Server) listRenderers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"renderers": s.registry.List()})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))
	start := time.Now()

	var req GenerateRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err), Kind: KindBadRequest})
		return
	}
	if len(req.Banks) == 0 {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: orchestrator.ErrNoBanks.Error(), Kind: KindBadRequest})
		return
	}

	rendererName := strings.TrimSpace(req.Renderer)
	if rendererName == "" {
		rendererName = orchestrator.DefaultRenderer
	}
	renderer, err := s.registry.Get(rendererName)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindBadRequest})
		return
	}

	sources := make([]bank.Source, 0, len(req.Banks))
	for i, payload := range req.Banks {
		name := strings.TrimSpace(payload.Name)
		if name == "" {
			name = fmt.Sprintf("bank-%d.json", i+1)
		}
		sources = append(sources, bank.SourceFromBytes(name, payload.Questions))
	}

	gen := s.plain
	if req.HTMLMarkup {
		gen = s.html
	}
	document, err := gen.Generate(r.Context(), orchestrator.Request{
		Sources:      sources,
		Options:      req.Options,
		Renderer:     rendererName,
		ThemeName:    req.Theme,
		ThemeVariant: req.Variant,
	})
	if err != nil {
		status, body := classify(err)
		logger.Warn("generation failed", zap.Error(err), zap.Int("status", status))
		writeError(w, status, body)
		return
	}

	logger.Info("generation complete",
		zap.String("renderer", rendererName),
		zap.Int("banks", len(sources)),
		zap.Int("bytes", len(document)),
		zap.Duration("duration", time.Since(start)),
	)
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("X-Run-ID", runID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

// classify maps a pipeline error onto a status code and response body.
func classify(err error) (int, ErrorResponse) {
	body := ErrorResponse{Error: err.Error()}

	var notFound *bank.NotFoundError
	var schemaErr *bank.SchemaError
	var renderErr *render.RenderError
	switch {
	case errors.As(err, &notFound):
		body.Kind = KindNotFound
		return http.StatusNotFound, body
	case errors.As(err, &schemaErr):
		body.Kind = KindSchema
		body.QuestionID = schemaErr.QuestionID
		body.SourceQuestionID = schemaErr.SourceID
		body.Source = schemaErr.Source
		body.Field = schemaErr.Field
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &renderErr):
		body.Kind = KindRender
		body.QuestionID = renderErr.QuestionID
		body.Field = renderErr.Field
		return http.StatusInternalServerError, body
	case errors.Is(err, themes.ErrUnknownTheme),
		errors.Is(err, themes.ErrUnknownVariant),
		errors.Is(err, render.ErrRendererNotFound),
		errors.Is(err, orchestrator.ErrNoBanks):
		body.Kind = KindBadRequest
		return http.StatusBadRequest, body
	default:
		body.Kind = KindInternal
		return http.StatusInternalServerError, body
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, body ErrorResponse) {
	writeJSON(w, status, body)
}

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-reportgen/pkg/app"
	"github.com/goliatone/go-reportgen/pkg/form"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/server/api"
)

const maxBodyBytes = 1 << 20

// Handler serves the page and the JSON API on top of one App.
type Handler struct {
	app       *app.App
	renderers *render.Registry
	page      string
	options   render.RenderOptions
	version   string
}

// NewHandler wires the handler. GET / negotiates a renderer from renderers
// by the Accept header and falls back to page.
func NewHandler(a *app.App, renderers *render.Registry, page string, options render.RenderOptions, version string) *Handler {
	return &Handler{app: a, renderers: renderers, page: page, options: options, version: version}
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	view, err := h.app.View()
	if err != nil {
		writeError(w, r, err)
		return
	}
	renderer, err := h.renderers.Negotiate(r.Header.Get("Accept"), h.page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := renderer.Render(r.Context(), view, h.options)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Add("Vary", "Accept")
	if _, err := w.Write(out); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write page")
	}
}

func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.Languages{
		Current:   h.app.Language(),
		Languages: h.app.Languages(),
	})
}

func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req api.LanguageRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.app.Load(r.Context(), req.Language); err != nil {
		writeError(w, r, err)
		return
	}
	h.ListLanguages(w, r)
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.app.Config()
	if !ok {
		writeError(w, r, app.ErrNoForm)
		return
	}
	writeJSON(w, r, http.StatusOK, cfg)
}

func (h *Handler) SetFieldValue(w http.ResponseWriter, r *http.Request) {
	var req api.FieldValueRequest
	if !decode(w, r, &req) {
		return
	}
	text, applied, err := h.app.SetValueAt(chi.URLParam(r, "sectionID"), chi.URLParam(r, "fieldID"), req.Value, req.Seq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.Report{Report: text, Stale: !applied})
}

func (h *Handler) SetIncluded(w http.ResponseWriter, r *http.Request) {
	var req api.IncludedRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Included == nil {
		writeJSON(w, r, http.StatusBadRequest, api.Error{Error: "included is required"})
		return
	}
	text, err := h.app.SetIncluded(chi.URLParam(r, "sectionID"), *req.Included)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.Report{Report: text})
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	text, err := h.app.Generate()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeText(w, r, text)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	text, err := h.app.Report()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeText(w, r, text)
}

func (h *Handler) GetStructured(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.app.Snapshot()
	if !ok {
		writeError(w, r, app.ErrNoForm)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := io.WriteString(w, snapshot); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write structured report")
	}
}

func (h *Handler) ImportStructured(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, api.Error{Error: err.Error()})
		return
	}
	restored, err := h.app.Import(r.Context(), string(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.ImportResult{Restored: restored})
}

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.app.Config()
	if !ok {
		writeError(w, r, app.ErrNoForm)
		return
	}
	writeJSON(w, r, http.StatusOK, report.Document(cfg, h.version))
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeJSON(w, r, http.StatusBadRequest, api.Error{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func statusFor(err error) int {
	var loadErr *app.LoadError
	switch {
	case errors.Is(err, app.ErrNoForm):
		return http.StatusServiceUnavailable
	case errors.Is(err, app.ErrUnknownLanguage),
		errors.Is(err, form.ErrUnknownSection),
		errors.Is(err, form.ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, app.ErrStaleLoad):
		return http.StatusConflict
	case errors.As(err, &loadErr):
		return http.StatusBadGateway
	case errors.Is(err, report.ErrInvalidReport):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	writeJSON(w, r, status, api.Error{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeText(w http.ResponseWriter, r *http.Request, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, text); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write report")
	}
}

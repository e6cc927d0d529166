package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bakulab/scrumbot/internal/chat"
	"github.com/bakulab/scrumbot/internal/scrum"
)

// Core consumes decoded chat updates.
type Core interface {
	HandleUpdate(ctx context.Context, u chat.Update)
}

// Runner fires a registered trigger outside its timer.
type Runner interface {
	RunNow(id string) error
}

type Handler struct {
	core   Core
	disp   Runner
	decode chat.UpdateDecoder

	Mux *chi.Mux
}

func NewHandler(core Core, disp Runner, decode chat.UpdateDecoder) *Handler {
	initMetrics()
	return &Handler{
		core:   core,
		disp:   disp,
		decode: decode,

		Mux: chi.NewRouter(),
	}
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Post("/hook", h.Hook)
	h.Mux.Get("/health", h.Health)
	h.Mux.Get("/cron/prompt", h.CronPrompt)
	h.Mux.Get("/cron/summary", h.CronSummary)
	h.Mux.Handle("/metrics", promhttp.Handler())
}

// Hook accepts one transport update. The webhook caller retries on non-2xx,
// so updates we choose to skip still answer 200.
func (h *Handler) Hook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	u, ok, err := h.decode(body)
	if err != nil {
		slog.Warn("rejected malformed update", "error", err)
		http.Error(w, "malformed update", http.StatusBadRequest)
		return
	}
	if ok {
		h.core.HandleUpdate(r.Context(), u)
	}
	h.writeText(w, http.StatusOK, "ok")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeText(w, http.StatusOK, "ok")
}

func (h *Handler) CronPrompt(w http.ResponseWriter, r *http.Request) {
	if err := h.disp.RunNow(scrum.TriggerPrompt); err != nil {
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "prompt_sent"})
}

func (h *Handler) CronSummary(w http.ResponseWriter, r *http.Request) {
	if err := h.disp.RunNow(scrum.TriggerSummary); err != nil {
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "summary_posted"})
}

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	marqueeerrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/resolve"
)

type handler struct {
	resolver Resolver
	minScore float64
	language string
	region   string
	logger   *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) resolve(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := resolve.ParseParams(values)
	if values.Get("minScore") == "" {
		q.MinScore = h.minScore
	}
	if q.Language == "" {
		q.Language = h.language
	}
	if q.Region == "" {
		q.Region = h.region
	}

	result, err := h.resolver.Resolve(r.Context(), q)
	if err != nil {
		status := statusFor(err)
		h.logger.Log(r.Context(), levelFor(status), "Resolve failed",
			"request_id", RequestIDFromContext(r.Context()),
			"query", q.Text,
			"imdb_id", q.ExternalID,
			"status", status,
			"error", err,
		)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// statusFor maps resolution errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case marqueeerrors.IsInputError(err):
		return http.StatusBadRequest
	case marqueeerrors.IsConfigError(err):
		return http.StatusInternalServerError
	case marqueeerrors.IsUpstreamError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func levelFor(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelInfo
	}
	return slog.LevelError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

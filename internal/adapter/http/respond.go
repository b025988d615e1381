package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bookpress/internal/core/port"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func (h *Handler) respondErrorStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: msg}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// respondError translates sentinel errors into status codes. Anything
// unrecognised is logged and reported as a generic 500.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		h.respondErrorStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, port.ErrInvalidOption), errors.Is(err, port.ErrNoRecipients):
		h.respondErrorStatus(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrInvalidCredentials):
		h.respondErrorStatus(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, port.ErrAlreadySent),
		errors.Is(err, port.ErrDispatchRunning),
		errors.Is(err, port.ErrInsufficientStock),
		errors.Is(err, port.ErrEmailTaken):
		h.respondErrorStatus(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		h.respondErrorStatus(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

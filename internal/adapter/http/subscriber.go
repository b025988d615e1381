package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s, err := h.subscribers.Subscribe(r.Context(), req.Email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, s)
}

func (h *Handler) handleVerifySubscriber(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := h.subscribers.Verify(r.Context(), token); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.subscribers.Unsubscribe(r.Context(), req.Email); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}

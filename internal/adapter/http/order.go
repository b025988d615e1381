package httpadapter

import (
	"net/http"

	"github.com/google/uuid"
)

type orderRequest struct {
	BookID   uuid.UUID `json:"bookId"`
	Quantity int       `json:"quantity"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		h.respondErrorStatus(w, http.StatusUnauthorized, "missing session")
		return
	}
	var req orderRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	o, err := h.orders.Create(r.Context(), userID, req.BookID, req.Quantity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, o)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, orders)
}

func (h *Handler) handleListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		h.respondErrorStatus(w, http.StatusUnauthorized, "missing session")
		return
	}
	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, orders)
}

package httpadapter

import (
	"net/http"

	"bookpress/internal/core/domain"
)

type bookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Stock       int    `json:"stock"`
	CoverURL    string `json:"coverUrl"`
}

func (h *Handler) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	b, err := h.books.Create(r.Context(), domain.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, b)
}

func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, books)
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.books.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, b)
}

func (h *Handler) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req bookRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	b, err := h.books.Update(r.Context(), domain.Book{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, b)
}

func (h *Handler) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.books.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

package httpadapter

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookpress/internal/core/domain"
)

type blogRequest struct {
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	PublishAt *time.Time `json:"publishAt"`
}

func idParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// requestIsAdmin reports whether the request carries a valid admin
// token. Used on public routes whose payload widens for admins.
func (h *Handler) requestIsAdmin(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	claims, err := h.tokens.Parse(token)
	return err == nil && claims.Role == domain.RoleAdmin
}

func (h *Handler) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	b, err := h.blogs.Create(r.Context(), domain.Blog{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Status:    req.Status,
		PublishAt: req.PublishAt,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, b)
}

func (h *Handler) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogs.List(r.Context(), h.requestIsAdmin(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, posts)
}

func (h *Handler) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	b, err := h.blogs.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, b)
}

func (h *Handler) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req blogRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	b, err := h.blogs.Update(r.Context(), domain.Blog{
		ID:        id,
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Status:    req.Status,
		PublishAt: req.PublishAt,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, b)
}

func (h *Handler) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.blogs.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

package httpadapter

import "net/http"

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) handleSubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	m, err := h.contacts.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, m)
}

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.contacts.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, msgs)
}

package httpadapter

import (
	"net/http"

	"bookpress/internal/core/port"
)

type newsletterRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// sendRequest mirrors DispatchOptions with pointer fields so omitted
// values fall back to the documented defaults.
type sendRequest struct {
	OnlyVerified   *bool             `json:"onlyVerified"`
	BatchSize      *int              `json:"batchSize"`
	BatchDelayMs   *int              `json:"batchDelayMs"`
	MaxConcurrency *int              `json:"maxConcurrency"`
	Retries        *int              `json:"retries"`
	DryRun         bool              `json:"dryRun"`
	CustomFilter   map[string]string `json:"customFilter"`
}

func (req sendRequest) options() port.DispatchOptions {
	opts := port.DefaultDispatchOptions()
	if req.OnlyVerified != nil {
		opts.OnlyVerified = *req.OnlyVerified
	}
	if req.BatchSize != nil {
		opts.BatchSize = *req.BatchSize
	}
	if req.BatchDelayMs != nil {
		opts.BatchDelayMs = *req.BatchDelayMs
	}
	if req.MaxConcurrency != nil {
		opts.MaxConcurrency = *req.MaxConcurrency
	}
	if req.Retries != nil {
		opts.Retries = *req.Retries
	}
	opts.DryRun = req.DryRun
	opts.CustomFilter = req.CustomFilter
	return opts
}

func (h *Handler) handleCreateNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := decode(r, &req); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	n, err := h.newsletters.Create(r.Context(), req.Subject, req.Content)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, n)
}

func (h *Handler) handleListNewsletters(w http.ResponseWriter, r *http.Request) {
	ns, err := h.newsletters.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, ns)
}

func (h *Handler) handleGetNewsletter(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	n, err := h.newsletters.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, n)
}

func (h *Handler) handleSendNewsletter(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req sendRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			h.respondErrorStatus(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}
	summary, err := h.newsletters.Dispatch(r.Context(), id, req.options())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, summary)
}

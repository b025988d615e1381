package domain

import (
	"time"

	"github.com/google/uuid"
)

// Newsletter statuses. A newsletter starts as a draft, is claimed as
// "sending" for the duration of a dispatch and ends up in one of the
// result states. Only "sent" blocks further dispatch attempts.
const (
	NewsletterStatusDraft   = "draft"
	NewsletterStatusSending = "sending"
	NewsletterStatusSent    = "sent"
	NewsletterStatusPartial = "partial"
	NewsletterStatusDrySent = "dry-sent"
)

// Newsletter is an email campaign: a subject and an HTML body addressed
// to the active subscriber base. The outcome of the most recent dispatch
// attempt is stored on the record itself.
type Newsletter struct {
	ID        uuid.UUID         `json:"id"`
	Subject   string            `json:"subject"`
	Content   string            `json:"content"`
	Status    string            `json:"status"`
	SentAt    *time.Time        `json:"sentAt,omitempty"`
	Metrics   NewsletterMetrics `json:"metrics"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewsletterMetrics summarises the last dispatch attempt.
type NewsletterMetrics struct {
	TotalRecipients int        `json:"totalRecipients"`
	Sent            int        `json:"sent"`
	Failed          int        `json:"failed"`
	DryRun          bool       `json:"dryRun"`
	LastAttemptAt   *time.Time `json:"lastAttemptAt,omitempty"`
}

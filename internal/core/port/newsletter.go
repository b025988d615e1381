package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
)

// Dispatch option defaults.
const (
	DefaultBatchSize      = 100
	DefaultBatchDelayMs   = 1000
	DefaultMaxConcurrency = 10
	DefaultRetries        = 2
)

// DispatchOptions tune one newsletter dispatch run. Use
// DefaultDispatchOptions as the base and override individual fields.
type DispatchOptions struct {
	OnlyVerified   bool
	BatchSize      int
	BatchDelayMs   int
	MaxConcurrency int
	Retries        int
	DryRun         bool
	CustomFilter   map[string]string
}

// DefaultDispatchOptions returns the options applied when a send request
// leaves a field unset.
func DefaultDispatchOptions() DispatchOptions {
	return DispatchOptions{
		OnlyVerified:   true,
		BatchSize:      DefaultBatchSize,
		BatchDelayMs:   DefaultBatchDelayMs,
		MaxConcurrency: DefaultMaxConcurrency,
		Retries:        DefaultRetries,
	}
}

// RecipientResult is the per-recipient outcome of one dispatch, in input
// order.
type RecipientResult struct {
	Email     string `json:"email"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DispatchSummary is returned by a dispatch run.
type DispatchSummary struct {
	NewsletterID uuid.UUID         `json:"newsletterId"`
	Subject      string            `json:"subject"`
	Total        int               `json:"total"`
	Sent         int               `json:"sent"`
	Failed       int               `json:"failed"`
	Status       string            `json:"status"`
	DryRun       bool              `json:"dryRun"`
	Results      []RecipientResult `json:"results"`
}

// NewsletterRepository is the persistence port for newsletters.
type NewsletterRepository interface {
	Create(ctx context.Context, n *domain.Newsletter) error
	// GetByID returns nil when the newsletter does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Newsletter, error)
	List(ctx context.Context) ([]domain.Newsletter, error)
	// MarkSending claims the newsletter for a dispatch run. It performs a
	// conditional update (status must not be terminal) and reports
	// whether the claim succeeded, closing the check-then-act window of
	// the already-sent guard.
	MarkSending(ctx context.Context, id uuid.UUID) (bool, error)
	// UpdateDispatchResult persists the final status, sentAt and metrics
	// in a single write at the end of a dispatch run.
	UpdateDispatchResult(ctx context.Context, id uuid.UUID, status string, sentAt *time.Time, m domain.NewsletterMetrics) error
}

// NewsletterUseCase exposes newsletter management and the dispatch
// pipeline.
type NewsletterUseCase interface {
	Create(ctx context.Context, subject, content string) (*domain.Newsletter, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Newsletter, error)
	List(ctx context.Context) ([]domain.Newsletter, error)
	// Dispatch fans the newsletter out to the eligible subscriber base.
	// It returns ErrNotFound, ErrAlreadySent, ErrDispatchRunning,
	// ErrNoRecipients or ErrInvalidOption for the documented precondition
	// failures.
	Dispatch(ctx context.Context, id uuid.UUID, opts DispatchOptions) (*DispatchSummary, error)
}

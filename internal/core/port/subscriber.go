package port

import (
	"context"

	"bookpress/internal/core/domain"
)

// SubscriberFilter narrows the audience scan for recipient resolution.
// Attributes are matched as equality constraints against the
// subscriber's attribute map.
type SubscriberFilter struct {
	OnlyActive   bool
	OnlyVerified bool
	Attributes   map[string]string
}

// SubscriberRepository is the persistence port for the newsletter
// audience.
type SubscriberRepository interface {
	// Upsert inserts the subscriber or reactivates an existing row with
	// the same email. It reports whether a new row was created.
	Upsert(ctx context.Context, s *domain.Subscriber) (bool, error)
	// FindByEmail returns nil when no subscriber matches.
	FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	// VerifyByToken marks the matching subscriber verified and reports
	// whether a row was updated.
	VerifyByToken(ctx context.Context, token string) (bool, error)
	// Deactivate clears is_active for the given email and reports
	// whether a row was updated.
	Deactivate(ctx context.Context, email string) (bool, error)
	// ListEmails returns the raw email column for subscribers matching
	// the filter. Normalisation and deduplication are the caller's job.
	ListEmails(ctx context.Context, f SubscriberFilter) ([]string, error)
	CountActive(ctx context.Context) (int64, error)
}

// SubscriberUseCase exposes the public subscribe/verify/unsubscribe flow.
type SubscriberUseCase interface {
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
	Verify(ctx context.Context, token string) error
	Unsubscribe(ctx context.Context, email string) error
}

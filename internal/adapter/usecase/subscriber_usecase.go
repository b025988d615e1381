package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// SubscriberUseCase implements the public subscribe/verify/unsubscribe
// flow for the newsletter audience.
type SubscriberUseCase struct {
	subscribers port.SubscriberRepository
}

// NewSubscriberUseCase creates the subscription service.
func NewSubscriberUseCase(subscribers port.SubscriberRepository) *SubscriberUseCase {
	return &SubscriberUseCase{subscribers: subscribers}
}

// Subscribe adds (or reactivates) a subscriber. The operation is
// idempotent per email, case-insensitively.
func (u *SubscriberUseCase) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: valid email is required", port.ErrInvalidOption)
	}

	s := &domain.Subscriber{
		Email:             email,
		IsActive:          true,
		VerificationToken: uuid.NewString(),
	}
	if _, err := u.subscribers.Upsert(ctx, s); err != nil {
		return nil, fmt.Errorf("upsert subscriber: %w", err)
	}
	return s, nil
}

// Verify completes double opt-in for the token's subscriber.
func (u *SubscriberUseCase) Verify(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", port.ErrInvalidOption)
	}
	ok, err := u.subscribers.VerifyByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("verify subscriber: %w", err)
	}
	if !ok {
		return port.ErrNotFound
	}
	return nil
}

// Unsubscribe deactivates the subscriber.
func (u *SubscriberUseCase) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	ok, err := u.subscribers.Deactivate(ctx, email)
	if err != nil {
		return fmt.Errorf("deactivate subscriber: %w", err)
	}
	if !ok {
		return port.ErrNotFound
	}
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// ContactUseCase stores contact-form submissions.
type ContactUseCase struct {
	contacts port.ContactRepository
}

// NewContactUseCase creates the contact service.
func NewContactUseCase(contacts port.ContactRepository) *ContactUseCase {
	return &ContactUseCase{contacts: contacts}
}

// Submit stores one message after basic validation.
func (u *ContactUseCase) Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", port.ErrInvalidOption)
	case !emailPattern.MatchString(email):
		return nil, fmt.Errorf("%w: valid email is required", port.ErrInvalidOption)
	case message == "":
		return nil, fmt.Errorf("%w: message is required", port.ErrInvalidOption)
	}

	m := &domain.ContactMessage{Name: name, Email: email, Message: message}
	if err := u.contacts.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return m, nil
}

// List returns all messages (admin).
func (u *ContactUseCase) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return u.contacts.List(ctx)
}

package port

import (
	"context"

	"bookpress/internal/core/domain"
)

// ContactRepository is the persistence port for contact-form messages.
type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) error
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

// ContactUseCase exposes the contact form.
type ContactUseCase interface {
	Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

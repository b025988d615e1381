package port

import (
	"context"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
)

// BookRepository is the persistence port for the book catalogue.
type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) error
	// GetByID returns nil when the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Update(ctx context.Context, b *domain.Book) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BookUseCase exposes catalogue management.
type BookUseCase interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	Update(ctx context.Context, b domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package port

import (
	"context"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
)

// OrderRepository is the persistence port for orders.
type OrderRepository interface {
	// CreateAndDecrementStock stores the order and decrements the book's
	// stock in one transaction. It returns ErrInsufficientStock when the
	// conditional decrement matches no row, leaving no order behind.
	CreateAndDecrementStock(ctx context.Context, o *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	// Totals returns the order count and summed revenue in cents.
	Totals(ctx context.Context) (count int64, revenueCents int64, err error)
}

// OrderUseCase exposes checkout and order listing.
type OrderUseCase interface {
	Create(ctx context.Context, userID, bookID uuid.UUID, quantity int) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

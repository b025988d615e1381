package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// OrderUseCase implements checkout against the book inventory.
type OrderUseCase struct {
	orders port.OrderRepository
	books  port.BookRepository
}

// NewOrderUseCase creates the order service.
func NewOrderUseCase(orders port.OrderRepository, books port.BookRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, books: books}
}

// Create places an order for quantity units of one book, decrementing
// stock atomically. ErrInsufficientStock is returned without writing an
// order when stock does not cover the quantity.
func (u *OrderUseCase) Create(ctx context.Context, userID, bookID uuid.UUID, quantity int) (*domain.Order, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", port.ErrInvalidOption)
	}

	book, err := u.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}
	if book == nil {
		return nil, port.ErrNotFound
	}

	order := &domain.Order{
		BookID:     bookID,
		UserID:     userID,
		Quantity:   quantity,
		TotalCents: book.PriceCents * int64(quantity),
		Status:     domain.OrderStatusPlaced,
	}
	if err := u.orders.CreateAndDecrementStock(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns all orders (admin).
func (u *OrderUseCase) List(ctx context.Context) ([]domain.Order, error) {
	return u.orders.List(ctx)
}

// ListByUser returns one user's orders.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

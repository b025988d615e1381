package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

type fakeBookRepo struct {
	byID map[uuid.UUID]*domain.Book
}

func (r *fakeBookRepo) Create(ctx context.Context, b *domain.Book) error { return nil }
func (r *fakeBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return r.byID[id], nil
}
func (r *fakeBookRepo) List(ctx context.Context) ([]domain.Book, error)      { return nil, nil }
func (r *fakeBookRepo) Update(ctx context.Context, b *domain.Book) (bool, error) { return false, nil }
func (r *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error)   { return false, nil }

type fakeOrderRepo struct {
	stock   int
	created *domain.Order
}

func (r *fakeOrderRepo) CreateAndDecrementStock(ctx context.Context, o *domain.Order) error {
	if r.stock < o.Quantity {
		return port.ErrInsufficientStock
	}
	r.stock -= o.Quantity
	r.created = o
	return nil
}
func (r *fakeOrderRepo) List(ctx context.Context) ([]domain.Order, error) { return nil, nil }
func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) Totals(ctx context.Context) (int64, int64, error) { return 0, 0, nil }

func TestCreateOrder(t *testing.T) {
	book := &domain.Book{ID: uuid.New(), Title: "Night Trains", PriceCents: 1599, Stock: 3}
	books := &fakeBookRepo{byID: map[uuid.UUID]*domain.Book{book.ID: book}}
	orders := &fakeOrderRepo{stock: 3}
	u := NewOrderUseCase(orders, books)
	userID := uuid.New()

	o, err := u.Create(context.Background(), userID, book.ID, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3198), o.TotalCents)
	require.Equal(t, domain.OrderStatusPlaced, o.Status)
	require.Equal(t, 1, orders.stock)

	// Remaining stock no longer covers the quantity.
	_, err = u.Create(context.Background(), userID, book.ID, 2)
	require.ErrorIs(t, err, port.ErrInsufficientStock)
	require.Equal(t, 1, orders.stock)
}

func TestCreateOrderValidation(t *testing.T) {
	book := &domain.Book{ID: uuid.New(), PriceCents: 1000, Stock: 5}
	books := &fakeBookRepo{byID: map[uuid.UUID]*domain.Book{book.ID: book}}
	u := NewOrderUseCase(&fakeOrderRepo{stock: 5}, books)

	_, err := u.Create(context.Background(), uuid.New(), book.ID, 0)
	require.ErrorIs(t, err, port.ErrInvalidOption)

	_, err = u.Create(context.Background(), uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, port.ErrNotFound)
}

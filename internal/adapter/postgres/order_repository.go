package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// OrderRepository implements port.OrderRepository using pgxpool.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a new repository instance.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateAndDecrementStock stores the order and decrements the book's
// stock in one transaction. The decrement is conditional on sufficient
// stock; zero matched rows rolls the transaction back with
// port.ErrInsufficientStock.
func (r *OrderRepository) CreateAndDecrementStock(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE books
        SET stock = stock - $2, updated_at = now()
        WHERE id = $1 AND stock >= $2`,
		o.BookID, o.Quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrInsufficientStock
	}

	row := tx.QueryRow(ctx, `
        INSERT INTO orders (book_id, user_id, quantity, total_cents, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`,
		o.BookID, o.UserID, o.Quantity, o.TotalCents, o.Status)
	if err := row.Scan(&o.ID, &o.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, book_id, user_id, quantity, total_cents, status, created_at`

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		var o domain.Order
		err := row.Scan(&o.ID, &o.BookID, &o.UserID, &o.Quantity, &o.TotalCents, &o.Status, &o.CreatedAt)
		return o, err
	})
}

// List returns all orders newest first.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// ListByUser returns one user's orders newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// Totals returns the order count and summed revenue in cents.
func (r *OrderRepository) Totals(ctx context.Context) (int64, int64, error) {
	var count, revenue int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*), COALESCE(sum(total_cents), 0) FROM orders WHERE status = $1`,
		domain.OrderStatusPlaced).Scan(&count, &revenue)
	return count, revenue, err
}

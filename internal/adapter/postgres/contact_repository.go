package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookpress/internal/core/domain"
)

// ContactRepository implements port.ContactRepository using pgxpool.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository returns a new repository instance.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// Create stores a contact-form message.
func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO contact_messages (name, email, message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`,
		m.Name, m.Email, m.Message)
	return row.Scan(&m.ID, &m.CreatedAt)
}

// List returns messages newest first.
func (r *ContactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, email, message, created_at
        FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ContactMessage, error) {
		var m domain.ContactMessage
		err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)
		return m, err
	})
}

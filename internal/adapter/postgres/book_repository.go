package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookpress/internal/core/domain"
)

// BookRepository implements port.BookRepository using pgxpool.
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a new repository instance.
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id, title, author, description, price_cents, stock, cover_url, created_at, updated_at`

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.PriceCents, &b.Stock, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create stores a new book and fills in the generated fields.
func (r *BookRepository) Create(ctx context.Context, b *domain.Book) error {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO books (title, author, description, price_cents, stock, cover_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`,
		b.Title, b.Author, b.Description, b.PriceCents, b.Stock, b.CoverURL)
	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns nil when the book does not exist.
func (r *BookRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	b, err := scanBook(r.pool.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// List returns the catalogue newest first.
func (r *BookRepository) List(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Book, error) {
		b, err := scanBook(row)
		if err != nil {
			return domain.Book{}, err
		}
		return *b, nil
	})
}

// Update rewrites the mutable fields and reports whether a row matched.
func (r *BookRepository) Update(ctx context.Context, b *domain.Book) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE books
        SET title = $2, author = $3, description = $4, price_cents = $5, stock = $6, cover_url = $7, updated_at = now()
        WHERE id = $1`,
		b.ID, b.Title, b.Author, b.Description, b.PriceCents, b.Stock, b.CoverURL)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the book and reports whether a row matched.
func (r *BookRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

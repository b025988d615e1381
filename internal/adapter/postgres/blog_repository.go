package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookpress/internal/core/domain"
)

// BlogRepository implements port.BlogRepository using pgxpool.
type BlogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository returns a new repository instance.
func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, slug, content, status, publish_at, created_at, updated_at`

func scanBlog(row pgx.Row) (*domain.Blog, error) {
	var b domain.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Status, &b.PublishAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create stores a new post and fills in the generated fields.
func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO blogs (title, slug, content, status, publish_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`,
		b.Title, b.Slug, b.Content, b.Status, b.PublishAt)
	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns nil when the post does not exist.
func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// List returns posts newest first, optionally published only.
func (r *BlogRepository) List(ctx context.Context, publishedOnly bool) ([]domain.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs`
	if publishedOnly {
		query += ` WHERE status = '` + domain.BlogStatusPublished + `'`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Blog, error) {
		b, err := scanBlog(row)
		if err != nil {
			return domain.Blog{}, err
		}
		return *b, nil
	})
}

// Update rewrites the mutable fields and reports whether a row matched.
func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE blogs
        SET title = $2, slug = $3, content = $4, status = $5, publish_at = $6, updated_at = now()
        WHERE id = $1`,
		b.ID, b.Title, b.Slug, b.Content, b.Status, b.PublishAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the post and reports whether a row matched.
func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PublishDue flips scheduled posts whose publish time has passed.
func (r *BlogRepository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE blogs
        SET status = $1, updated_at = now()
        WHERE status = $2 AND publish_at IS NOT NULL AND publish_at <= $3`,
		domain.BlogStatusPublished, domain.BlogStatusScheduled, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

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

// NewsletterRepository implements port.NewsletterRepository using pgxpool.
type NewsletterRepository struct {
	pool *pgxpool.Pool
}

// NewNewsletterRepository returns a new repository instance.
func NewNewsletterRepository(pool *pgxpool.Pool) *NewsletterRepository {
	return &NewsletterRepository{pool: pool}
}

const newsletterColumns = `
    id, subject, content, status, sent_at,
    total_recipients, sent_count, failed_count, dry_run, last_attempt_at,
    created_at, updated_at`

func scanNewsletter(row pgx.Row) (*domain.Newsletter, error) {
	var n domain.Newsletter
	err := row.Scan(
		&n.ID,
		&n.Subject,
		&n.Content,
		&n.Status,
		&n.SentAt,
		&n.Metrics.TotalRecipients,
		&n.Metrics.Sent,
		&n.Metrics.Failed,
		&n.Metrics.DryRun,
		&n.Metrics.LastAttemptAt,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create stores a new draft newsletter and fills in the generated fields.
func (r *NewsletterRepository) Create(ctx context.Context, n *domain.Newsletter) error {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO newsletters (subject, content, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`,
		n.Subject, n.Content, n.Status)
	return row.Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// GetByID returns nil when the newsletter does not exist.
func (r *NewsletterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Newsletter, error) {
	n, err := scanNewsletter(r.pool.QueryRow(ctx,
		`SELECT `+newsletterColumns+` FROM newsletters WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return n, err
}

// List returns newsletters newest first.
func (r *NewsletterRepository) List(ctx context.Context) ([]domain.Newsletter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+newsletterColumns+` FROM newsletters ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Newsletter, error) {
		n, err := scanNewsletter(row)
		if err != nil {
			return domain.Newsletter{}, err
		}
		return *n, nil
	})
}

// MarkSending claims the newsletter for a dispatch run. The conditional
// update is the atomic counterpart of the already-sent guard: two
// concurrent dispatches cannot both observe a claimable status.
func (r *NewsletterRepository) MarkSending(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE newsletters
        SET status = $2, updated_at = now()
        WHERE id = $1 AND status <> $3`,
		id, domain.NewsletterStatusSending, domain.NewsletterStatusSent)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateDispatchResult persists the final status, sentAt and metrics in a
// single write.
func (r *NewsletterRepository) UpdateDispatchResult(ctx context.Context, id uuid.UUID, status string, sentAt *time.Time, m domain.NewsletterMetrics) error {
	_, err := r.pool.Exec(ctx, `
        UPDATE newsletters
        SET status = $2,
            sent_at = $3,
            total_recipients = $4,
            sent_count = $5,
            failed_count = $6,
            dry_run = $7,
            last_attempt_at = $8,
            updated_at = now()
        WHERE id = $1`,
		id, status, sentAt, m.TotalRecipients, m.Sent, m.Failed, m.DryRun, m.LastAttemptAt)
	return err
}

// CountNewslettersByStatus aggregates newsletters per status for the
// admin dashboard.
func (r *NewsletterRepository) CountNewslettersByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, count(*) FROM newsletters GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

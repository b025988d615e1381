package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// SubscriberRepository implements port.SubscriberRepository using pgxpool.
type SubscriberRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriberRepository returns a new repository instance.
func NewSubscriberRepository(pool *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{pool: pool}
}

// Upsert inserts the subscriber or reactivates the existing row with the
// same (case-insensitive) email. It reports whether a new row was
// created.
func (r *SubscriberRepository) Upsert(ctx context.Context, s *domain.Subscriber) (bool, error) {
	attrs, err := json.Marshal(s.Attributes)
	if err != nil {
		return false, fmt.Errorf("marshal attributes: %w", err)
	}

	// Uniqueness is enforced by the expression index on lower(email);
	// ON CONFLICT infers it from the matching expression.
	row := r.pool.QueryRow(ctx, `
        INSERT INTO subscribers (email, is_active, is_verified, verification_token, attributes)
        VALUES ($1, TRUE, $2, $3, $4)
        ON CONFLICT (lower(email)) DO UPDATE SET is_active = TRUE
        RETURNING id, is_active, is_verified, verification_token, subscribed_at, (xmax = 0)`,
		s.Email, s.IsVerified, s.VerificationToken, attrs)

	var created bool
	if err := row.Scan(&s.ID, &s.IsActive, &s.IsVerified, &s.VerificationToken, &s.SubscribedAt, &created); err != nil {
		return false, err
	}
	return created, nil
}

// FindByEmail returns nil when no subscriber matches.
func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	var s domain.Subscriber
	var attrs []byte
	err := r.pool.QueryRow(ctx, `
        SELECT id, email, is_active, is_verified, verification_token, attributes, subscribed_at
        FROM subscribers WHERE lower(email) = lower($1)`, email).
		Scan(&s.ID, &s.Email, &s.IsActive, &s.IsVerified, &s.VerificationToken, &attrs, &s.SubscribedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &s.Attributes); err != nil {
			return nil, fmt.Errorf("unmarshal attributes: %w", err)
		}
	}
	return &s, nil
}

// VerifyByToken marks the matching subscriber verified.
func (r *SubscriberRepository) VerifyByToken(ctx context.Context, token string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
        UPDATE subscribers
        SET is_verified = TRUE, verification_token = ''
        WHERE verification_token = $1 AND verification_token <> ''`, token)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Deactivate clears is_active for the given email.
func (r *SubscriberRepository) Deactivate(ctx context.Context, email string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscribers SET is_active = FALSE WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListEmails returns the email column for subscribers matching the
// filter. Attribute constraints are equality matches against the JSONB
// attributes column.
func (r *SubscriberRepository) ListEmails(ctx context.Context, f port.SubscriberFilter) ([]string, error) {
	query := `SELECT email FROM subscribers WHERE TRUE`
	var args []any

	if f.OnlyActive {
		query += ` AND is_active`
	}
	if f.OnlyVerified {
		query += ` AND is_verified`
	}
	for k, v := range f.Attributes {
		args = append(args, k, v)
		query += fmt.Sprintf(` AND attributes ->> $%d = $%d`, len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var email string
		err := row.Scan(&email)
		return email, err
	})
}

// CountActive returns the number of active subscribers.
func (r *SubscriberRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM subscribers WHERE is_active`).Scan(&n)
	return n, err
}

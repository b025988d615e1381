package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
)

// BlogRepository is the persistence port for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) error
	// GetByID returns nil when the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	// List returns posts newest first. When publishedOnly is set, drafts
	// and scheduled posts are excluded.
	List(ctx context.Context, publishedOnly bool) ([]domain.Blog, error)
	Update(ctx context.Context, b *domain.Blog) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// PublishDue flips scheduled posts whose publish time has passed to
	// published and returns how many were updated.
	PublishDue(ctx context.Context, now time.Time) (int64, error)
}

// BlogUseCase exposes CMS operations on blog posts.
type BlogUseCase interface {
	Create(ctx context.Context, b domain.Blog) (*domain.Blog, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Blog, error)
	List(ctx context.Context, includeUnpublished bool) ([]domain.Blog, error)
	Update(ctx context.Context, b domain.Blog) (*domain.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// PublishDue is invoked by the cron publisher.
	PublishDue(ctx context.Context) (int64, error)
}

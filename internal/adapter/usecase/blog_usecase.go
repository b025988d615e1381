package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a title.
func slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// BlogUseCase implements CMS operations on blog posts.
type BlogUseCase struct {
	blogs port.BlogRepository
	now   func() time.Time
}

// NewBlogUseCase creates the blog service.
func NewBlogUseCase(blogs port.BlogRepository) *BlogUseCase {
	return &BlogUseCase{blogs: blogs, now: time.Now}
}

func (u *BlogUseCase) validate(b *domain.Blog) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Content = strings.TrimSpace(b.Content)
	if b.Title == "" {
		return fmt.Errorf("%w: title is required", port.ErrInvalidOption)
	}
	if b.Content == "" {
		return fmt.Errorf("%w: content is required", port.ErrInvalidOption)
	}
	if b.Slug == "" {
		b.Slug = slugify(b.Title)
	}
	switch b.Status {
	case "":
		b.Status = domain.BlogStatusDraft
	case domain.BlogStatusDraft, domain.BlogStatusPublished:
	case domain.BlogStatusScheduled:
		if b.PublishAt == nil {
			return fmt.Errorf("%w: scheduled posts need publishAt", port.ErrInvalidOption)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", port.ErrInvalidOption, b.Status)
	}
	return nil
}

// Create stores a new post.
func (u *BlogUseCase) Create(ctx context.Context, b domain.Blog) (*domain.Blog, error) {
	if err := u.validate(&b); err != nil {
		return nil, err
	}
	if err := u.blogs.Create(ctx, &b); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return &b, nil
}

// Get returns one post or ErrNotFound.
func (u *BlogUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	b, err := u.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load blog: %w", err)
	}
	if b == nil {
		return nil, port.ErrNotFound
	}
	return b, nil
}

// List returns posts; unpublished ones only when requested (admin).
func (u *BlogUseCase) List(ctx context.Context, includeUnpublished bool) ([]domain.Blog, error) {
	return u.blogs.List(ctx, !includeUnpublished)
}

// Update rewrites a post.
func (u *BlogUseCase) Update(ctx context.Context, b domain.Blog) (*domain.Blog, error) {
	if err := u.validate(&b); err != nil {
		return nil, err
	}
	ok, err := u.blogs.Update(ctx, &b)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	if !ok {
		return nil, port.ErrNotFound
	}
	return &b, nil
}

// Delete removes a post.
func (u *BlogUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := u.blogs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if !ok {
		return port.ErrNotFound
	}
	return nil
}

// PublishDue flips scheduled posts whose publish time has passed. It is
// invoked by the cron publisher.
func (u *BlogUseCase) PublishDue(ctx context.Context) (int64, error) {
	return u.blogs.PublishDue(ctx, u.now())
}

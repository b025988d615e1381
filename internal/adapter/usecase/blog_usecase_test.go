package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

type fakeBlogRepo struct {
	byID map[uuid.UUID]*domain.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{byID: map[uuid.UUID]*domain.Blog{}}
}

func (r *fakeBlogRepo) Create(ctx context.Context, b *domain.Blog) error {
	b.ID = uuid.New()
	r.byID[b.ID] = b
	return nil
}

func (r *fakeBlogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	return r.byID[id], nil
}

func (r *fakeBlogRepo) List(ctx context.Context, publishedOnly bool) ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range r.byID {
		if publishedOnly && b.Status != domain.BlogStatusPublished {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBlogRepo) Update(ctx context.Context, b *domain.Blog) (bool, error) {
	if _, ok := r.byID[b.ID]; !ok {
		return false, nil
	}
	r.byID[b.ID] = b
	return true, nil
}

func (r *fakeBlogRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *fakeBlogRepo) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for _, b := range r.byID {
		if b.Status == domain.BlogStatusScheduled && b.PublishAt != nil && !b.PublishAt.After(now) {
			b.Status = domain.BlogStatusPublished
			n++
		}
	}
	return n, nil
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "hello-world", slugify("Hello, World!"))
	require.Equal(t, "ten-books-for-2026", slugify("  Ten Books for 2026 "))
}

func TestBlogCreateDefaults(t *testing.T) {
	u := NewBlogUseCase(newFakeBlogRepo())

	b, err := u.Create(context.Background(), domain.Blog{Title: "First Post", Content: "hi"})
	require.NoError(t, err)
	require.Equal(t, "first-post", b.Slug)
	require.Equal(t, domain.BlogStatusDraft, b.Status)

	_, err = u.Create(context.Background(), domain.Blog{Title: "No Body"})
	require.ErrorIs(t, err, port.ErrInvalidOption)

	_, err = u.Create(context.Background(), domain.Blog{
		Title: "Scheduled", Content: "x", Status: domain.BlogStatusScheduled,
	})
	require.ErrorIs(t, err, port.ErrInvalidOption, "scheduled posts need publishAt")
}

func TestPublishDueFlipsOnlyDuePosts(t *testing.T) {
	repo := newFakeBlogRepo()
	u := NewBlogUseCase(repo)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return now }

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	due, err := u.Create(context.Background(), domain.Blog{
		Title: "Due", Content: "x", Status: domain.BlogStatusScheduled, PublishAt: &past,
	})
	require.NoError(t, err)
	notDue, err := u.Create(context.Background(), domain.Blog{
		Title: "Not Due", Content: "x", Status: domain.BlogStatusScheduled, PublishAt: &future,
	})
	require.NoError(t, err)

	n, err := u.PublishDue(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Equal(t, domain.BlogStatusPublished, repo.byID[due.ID].Status)
	require.Equal(t, domain.BlogStatusScheduled, repo.byID[notDue.ID].Status)
}

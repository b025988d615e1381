package domain

import (
	"time"

	"github.com/google/uuid"
)

// Blog post statuses.
const (
	BlogStatusDraft     = "draft"
	BlogStatusScheduled = "scheduled"
	BlogStatusPublished = "published"
)

// Blog is a CMS article. Scheduled posts carry a PublishAt time and are
// flipped to published by the cron publisher once that time passes.
type Blog struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Content   string     `json:"content"`
	Status    string     `json:"status"`
	PublishAt *time.Time `json:"publishAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

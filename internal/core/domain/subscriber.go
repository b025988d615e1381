package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a member of the newsletter audience. Emails are stored
// lowercased and trimmed; uniqueness is enforced case-insensitively by
// the database. Attributes holds free-form key/value pairs used for
// audience segmentation (e.g. {"segment": "premium"}).
type Subscriber struct {
	ID                uuid.UUID         `json:"id"`
	Email             string            `json:"email"`
	IsActive          bool              `json:"isActive"`
	IsVerified        bool              `json:"isVerified"`
	VerificationToken string            `json:"-"`
	Attributes        map[string]string `json:"attributes,omitempty"`
	SubscribedAt      time.Time         `json:"subscribedAt"`
}

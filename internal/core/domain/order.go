package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusCancelled = "cancelled"
)

// Order is a purchase of a quantity of one book. TotalCents is captured
// at order time from the book's current price.
type Order struct {
	ID         uuid.UUID `json:"id"`
	BookID     uuid.UUID `json:"bookId"`
	UserID     uuid.UUID `json:"userId"`
	Quantity   int       `json:"quantity"`
	TotalCents int64     `json:"totalCents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

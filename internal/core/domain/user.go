package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an authenticated principal. PasswordHash is a bcrypt hash and
// never leaves the persistence and auth layers.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user may access administrative routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

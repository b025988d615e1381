package port

import (
	"context"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
)

// UserRepository is the persistence port for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	// FindByEmail returns nil when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByID returns nil when the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// AuthResult bundles the issued token with the account it belongs to.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthUseCase exposes registration and login. Tokens are JWT bearer
// tokens carrying the user id and role.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, name string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

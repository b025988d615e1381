package usecase

import (
	"context"
	"fmt"
	"strings"

	"bookpress/internal/auth"
	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// AuthUseCase implements registration and login. Public registration
// always produces role "user"; admins are provisioned by the seeder or
// by hand.
type AuthUseCase struct {
	users  port.UserRepository
	tokens *auth.TokenManager
	hasher *auth.Hasher
}

// NewAuthUseCase creates the auth service.
func NewAuthUseCase(users port.UserRepository, tokens *auth.TokenManager, hasher *auth.Hasher) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens, hasher: hasher}
}

// Register creates a user account and returns a fresh session token.
func (u *AuthUseCase) Register(ctx context.Context, email, password, name string) (*port.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: valid email is required", port.ErrInvalidOption)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", port.ErrInvalidOption)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", port.ErrInvalidOption)
	}

	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, port.ErrEmailTaken
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         domain.RoleUser,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := u.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &port.AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and returns a fresh session token.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*port.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !u.hasher.Compare(user.PasswordHash, password) {
		return nil, port.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &port.AuthResult{Token: token, User: user}, nil
}

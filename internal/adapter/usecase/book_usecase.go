package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bookpress/internal/core/domain"
	"bookpress/internal/core/port"
)

// BookUseCase implements catalogue management.
type BookUseCase struct {
	books port.BookRepository
}

// NewBookUseCase creates the book service.
func NewBookUseCase(books port.BookRepository) *BookUseCase {
	return &BookUseCase{books: books}
}

func validateBook(b *domain.Book) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	switch {
	case b.Title == "":
		return fmt.Errorf("%w: title is required", port.ErrInvalidOption)
	case b.Author == "":
		return fmt.Errorf("%w: author is required", port.ErrInvalidOption)
	case b.PriceCents < 0:
		return fmt.Errorf("%w: price must not be negative", port.ErrInvalidOption)
	case b.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", port.ErrInvalidOption)
	}
	return nil
}

// Create stores a new book.
func (u *BookUseCase) Create(ctx context.Context, b domain.Book) (*domain.Book, error) {
	if err := validateBook(&b); err != nil {
		return nil, err
	}
	if err := u.books.Create(ctx, &b); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return &b, nil
}

// Get returns one book or ErrNotFound.
func (u *BookUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	b, err := u.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}
	if b == nil {
		return nil, port.ErrNotFound
	}
	return b, nil
}

// List returns the catalogue.
func (u *BookUseCase) List(ctx context.Context) ([]domain.Book, error) {
	return u.books.List(ctx)
}

// Update rewrites a book.
func (u *BookUseCase) Update(ctx context.Context, b domain.Book) (*domain.Book, error) {
	if err := validateBook(&b); err != nil {
		return nil, err
	}
	ok, err := u.books.Update(ctx, &b)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if !ok {
		return nil, port.ErrNotFound
	}
	return &b, nil
}

// Delete removes a book.
func (u *BookUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := u.books.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if !ok {
		return port.ErrNotFound
	}
	return nil
}

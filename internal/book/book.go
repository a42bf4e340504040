package book

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by the repository when no row matches.
var ErrNotFound = errors.New("book not found")

// ErrUniqueViolation is returned by the repository when a write trips the
// uk_books_isbn unique index.
var ErrUniqueViolation = errors.New("unique constraint violation")

// Book is the persisted book record. The wire shapes live in dto.go.
type Book struct {
	ID              uuid.UUID
	Title           string
	Author          string
	ISBN            string
	PublicationDate *Date
}

// NotFoundError is the domain error for a missing book id.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Book not found: %s", e.ID)
}

// DuplicateISBNError is the domain error for an ISBN that is already taken.
// The unique index is the authoritative arbiter; the service pre-check only
// produces this earlier in the common case.
type DuplicateISBNError struct {
	ISBN string
}

func (e *DuplicateISBNError) Error() string {
	return fmt.Sprintf("ISBN already exists: %s", e.ISBN)
}

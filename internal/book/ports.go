package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the contract for book storage.
//
// FindByID returns ErrNotFound when no row matches. Insert and Update return
// ErrUniqueViolation when the uk_books_isbn index rejects the write.
type Repository interface {
	Insert(ctx context.Context, b *Book) error
	FindByID(ctx context.Context, id uuid.UUID) (Book, error)
	FindAll(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, b *Book) error
	// DeleteByID reports whether a row was actually removed.
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// InTx runs fn against a repository scoped to a single transaction,
	// committing when fn returns nil and rolling back otherwise.
	InTx(ctx context.Context, fn func(Repository) error) error
}

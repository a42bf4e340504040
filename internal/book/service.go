package book

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Service holds the business rules around the repository: the ISBN
// uniqueness pre-check, not-found translation, and transaction scoping.
// Each write runs in its own transaction; reads go straight to the pool.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new book. Two concurrent creates with the same ISBN can
// both pass the pre-check; the second insert then fails on the unique index
// and is reported as DuplicateISBNError all the same.
func (s *Service) Create(ctx context.Context, req BookRequest) (BookResponse, error) {
	var resp BookResponse
	err := s.repo.InTx(ctx, func(r Repository) error {
		taken, err := r.ExistsByISBN(ctx, req.ISBN)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateISBNError{ISBN: req.ISBN}
		}

		b := ToEntity(req)
		if err := r.Insert(ctx, &b); err != nil {
			if errors.Is(err, ErrUniqueViolation) {
				return &DuplicateISBNError{ISBN: req.ISBN}
			}
			return err
		}
		resp = ToResponse(b)
		return nil
	})
	return resp, err
}

func (s *Service) FindAll(ctx context.Context) ([]BookResponse, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, ToResponse(b))
	}
	return out, nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (BookResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BookResponse{}, &NotFoundError{ID: id}
		}
		return BookResponse{}, err
	}
	return ToResponse(b), nil
}

// Update replaces all mutable fields of the book. Keeping the current ISBN
// is always allowed; only a change onto another book's ISBN conflicts.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req BookRequest) (BookResponse, error) {
	var resp BookResponse
	err := s.repo.InTx(ctx, func(r Repository) error {
		b, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return &NotFoundError{ID: id}
			}
			return err
		}

		if b.ISBN != req.ISBN {
			taken, err := r.ExistsByISBN(ctx, req.ISBN)
			if err != nil {
				return err
			}
			if taken {
				return &DuplicateISBNError{ISBN: req.ISBN}
			}
		}

		ApplyUpdate(&b, req)
		if err := r.Update(ctx, &b); err != nil {
			if errors.Is(err, ErrUniqueViolation) {
				return &DuplicateISBNError{ISBN: req.ISBN}
			}
			return err
		}
		resp = ToResponse(b)
		return nil
	})
	return resp, err
}

// Delete removes the book. A row that vanishes between the existence check
// and the delete is reported as not found rather than silently succeeding.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.InTx(ctx, func(r Repository) error {
		exists, err := r.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &NotFoundError{ID: id}
		}

		deleted, err := r.DeleteByID(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return &NotFoundError{ID: id}
		}
		return nil
	})
}

package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same queries run on the pool for reads and inside a transaction for writes.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepo struct {
	pool    *pgxpool.Pool
	db      querier
	timeout time.Duration
}

func NewPostgresRepo(pool *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{pool: pool, db: pool, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) InTx(ctx context.Context, fn func(Repository) error) error {
	if r.pool == nil {
		return errors.New("nested transaction")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&PostgresRepo{db: tx, timeout: r.timeout}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepo) Insert(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (id, title, author, isbn, publication_date)
		VALUES ($1, $2, $3, $4, $5)`

	b.ID = uuid.New()
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, sql, b.ID, b.Title, b.Author, b.ISBN, dateArg(b.PublicationDate)); err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id uuid.UUID) (Book, error) {
	const query = `
		SELECT id, title, author, isbn, publication_date
		FROM books
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("find book by id: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) FindAll(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT id, title, author, isbn, publication_date
		FROM books
		ORDER BY title`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("find all books: %w", err)
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("find all books: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const sql = `
		UPDATE books
		SET title = $2, author = $3, isbn = $4, publication_date = $5
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, b.ID, b.Title, b.Author, b.ISBN, dateArg(b.PublicationDate))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUniqueViolation
		}
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id)
}

func (r *PostgresRepo) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`, isbn)
}

func (r *PostgresRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(timeoutCtx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists query: %w", err)
	}
	return exists, nil
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	var pub *time.Time
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &pub); err != nil {
		return Book{}, err
	}
	if pub != nil {
		d := DateOf(*pub)
		b.PublicationDate = &d
	}
	return b, nil
}

func dateArg(d *Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

// isUniqueViolation reports whether err is Postgres error 23505, raised by
// the uk_books_isbn index.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrlokans/ebookshelf/internal/entities"
	"github.com/mrlokans/ebookshelf/internal/library"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS books (
	id          UUID PRIMARY KEY,
	seq         BIGSERIAL NOT NULL,
	title       TEXT NOT NULL CHECK (title <> ''),
	author      TEXT NOT NULL CHECK (author <> ''),
	isbn        TEXT UNIQUE,
	cover_image TEXT,
	file        TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const bookColumns = `id, title, author, isbn, cover_image, file, created_at, updated_at`

// PostgresRepository handles book database operations through a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ library.Store = (*PostgresRepository)(nil)

// NewPostgresRepository connects to dsn and creates the books table if
// it does not exist yet.
func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}
	config.MaxConns = 20
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create books table: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) CreateBook(ctx context.Context, book *entities.Book) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO books (id, title, author, isbn, cover_image, file)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		book.ID, book.Title, book.Author, book.ISBN, book.CoverImage, book.File)
	if err := row.Scan(&book.CreatedAt, &book.UpdatedAt); err != nil {
		return translatePgError(err)
	}
	return nil
}

// ListBooks returns all books in insertion order.
func (r *PostgresRepository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY seq`)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	books := []entities.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	return books, translatePgError(rows.Err())
}

func (r *PostgresRepository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	book, err := scanBook(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return book, nil
}

func (r *PostgresRepository) ReplaceBook(ctx context.Context, book *entities.Book) error {
	row := r.pool.QueryRow(ctx,
		`UPDATE books
		SET title = $2, author = $3, isbn = $4, cover_image = $5, file = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+bookColumns,
		book.ID, book.Title, book.Author, book.ISBN, book.CoverImage, book.File)
	stored, err := scanBook(row)
	if err != nil {
		return translatePgError(err)
	}
	*book = *stored
	return nil
}

func (r *PostgresRepository) DeleteBook(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return library.ErrBookNotFound
	}
	return nil
}

// Ping checks the pool can reach the server.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func scanBook(row pgx.Row) (*entities.Book, error) {
	var book entities.Book
	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN,
		&book.CoverImage, &book.File, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return library.ErrBookNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return library.ErrDuplicateISBN
		case pgerrcode.InvalidTextRepresentation:
			// malformed uuid
			return library.ErrBookNotFound
		}
	}
	return err
}

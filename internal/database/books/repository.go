// Package books provides database operations for book records.
//
// Repository (GORM, SQLite) and PostgresRepository (pgx) both implement
// library.Store:
//
//	var _ library.Store = (*Repository)(nil)
//	var _ library.Store = (*PostgresRepository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(ctx, id)
package books

import (
	"context"
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/mrlokans/ebookshelf/internal/entities"
	"github.com/mrlokans/ebookshelf/internal/library"
)

// replacedColumns are overwritten as a whole by ReplaceBook.
var replacedColumns = []string{"Title", "Author", "ISBN", "CoverImage", "File", "UpdatedAt"}

// Repository handles book database operations through GORM.
type Repository struct {
	db *gorm.DB
}

var _ library.Store = (*Repository)(nil)

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a new book and fills in its ID.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return translateError(r.db.WithContext(ctx).Create(book).Error)
}

// ListBooks returns all books in insertion order.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Order("rowid").Find(&books).Error
	return books, translateError(err)
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

// ReplaceBook overwrites title, author, isbn and both blob references,
// including with empty values.
func (r *Repository) ReplaceBook(ctx context.Context, book *entities.Book) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Book{}).
		Where("id = ?", book.ID).
		Select(replacedColumns).
		Updates(book)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return library.ErrBookNotFound
	}

	stored, err := r.GetBookByID(ctx, book.ID)
	if err != nil {
		return err
	}
	*book = *stored
	return nil
}

// DeleteBook removes the book record.
func (r *Repository) DeleteBook(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Book{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return library.ErrBookNotFound
	}
	return nil
}

// translateError maps GORM and SQLite errors onto library errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library.ErrBookNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return library.ErrDuplicateISBN
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return library.ErrDuplicateISBN
	}
	return err
}

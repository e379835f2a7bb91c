package library

import (
	"context"
	"io"
	"time"

	"github.com/mrlokans/ebookshelf/internal/entities"
)

// Store persists book records. Implementations translate backend errors
// into ErrBookNotFound and ErrDuplicateISBN.
type Store interface {
	CreateBook(ctx context.Context, book *entities.Book) error
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBookByID(ctx context.Context, id string) (*entities.Book, error)
	// ReplaceBook overwrites every mutable field of the record with book.ID.
	ReplaceBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id string) error
}

// FileStore keeps uploaded blobs.
type FileStore interface {
	Save(originalName string, content io.Reader) (string, error)
	Open(name string) (*StoredFile, error)
}

// StoredFile is an open blob from a FileStore.
type StoredFile struct {
	Name    string
	Size    int64
	ModTime time.Time
	Content io.ReadSeekCloser
}

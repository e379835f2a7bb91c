package library

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mrlokans/ebookshelf/internal/entities"
	"github.com/mrlokans/ebookshelf/internal/logger"
)

// Upload is a blob received with a create or update request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Uploads holds the optional blobs of a single request.
type Uploads struct {
	CoverImage *Upload
	File       *Upload
}

// Service implements the book operations on top of a Store and a FileStore.
type Service struct {
	store Store
	files FileStore
}

func NewService(store Store, files FileStore) *Service {
	return &Service{store: store, files: files}
}

// Create validates the input, stores any uploaded blobs and persists a new
// record referencing them.
func (s *Service) Create(ctx context.Context, in BookInput, uploads Uploads) (*entities.Book, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	coverImage, file, err := s.saveUploads(uploads)
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:      in.Title,
		Author:     in.Author,
		ISBN:       in.isbnPtr(),
		CoverImage: coverImage,
		File:       file,
	}
	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	logger.Get().Info().Str("book_id", book.ID).Str("title", book.Title).Msg("book created")
	return book, nil
}

// List returns every book in storage order.
func (s *Service) List(ctx context.Context) ([]entities.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []entities.Book{}
	}
	return books, nil
}

// Get returns the book with the given id. Ids that are not UUIDs cannot
// exist and are reported as not found.
func (s *Service) Get(ctx context.Context, id string) (*entities.Book, error) {
	if !validID(id) {
		return nil, ErrBookNotFound
	}
	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}
	return book, nil
}

// Update replaces title, author, isbn and both blob references. A blob
// that was not uploaded with this call clears the matching reference.
func (s *Service) Update(ctx context.Context, id string, in BookInput, uploads Uploads) (*entities.Book, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrBookNotFound
	}

	coverImage, file, err := s.saveUploads(uploads)
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		ID:         id,
		Title:      in.Title,
		Author:     in.Author,
		ISBN:       in.isbnPtr(),
		CoverImage: coverImage,
		File:       file,
	}
	if err := s.store.ReplaceBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book %s: %w", id, err)
	}

	logger.Get().Info().Str("book_id", id).Msg("book updated")
	return book, nil
}

// Delete removes the record. Blobs it referenced stay in the file store.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrBookNotFound
	}
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("delete book %s: %w", id, err)
	}
	logger.Get().Info().Str("book_id", id).Msg("book deleted")
	return nil
}

// Download opens the content blob of a book. The caller closes Content.
func (s *Service) Download(ctx context.Context, id string) (*StoredFile, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	if !book.HasFile() {
		return nil, ErrFileNotFound
	}

	f, err := s.files.Open(*book.File)
	if err != nil {
		return nil, fmt.Errorf("open file of book %s: %w", id, err)
	}
	return f, nil
}

func (s *Service) saveUploads(uploads Uploads) (coverImage, file *string, err error) {
	if coverImage, err = s.saveUpload(uploads.CoverImage); err != nil {
		return nil, nil, fmt.Errorf("save cover image: %w", err)
	}
	if file, err = s.saveUpload(uploads.File); err != nil {
		return nil, nil, fmt.Errorf("save book file: %w", err)
	}
	return coverImage, file, nil
}

func (s *Service) saveUpload(u *Upload) (*string, error) {
	if u == nil {
		return nil, nil
	}
	name, err := s.files.Save(u.Filename, u.Content)
	if err != nil {
		return nil, err
	}
	return &name, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

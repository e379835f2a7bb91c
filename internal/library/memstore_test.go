package library_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mrlokans/ebookshelf/internal/entities"
	"github.com/mrlokans/ebookshelf/internal/library"
)

// memoryStore is an in-memory library.Store with a unique ISBN index.
type memoryStore struct {
	mu    sync.Mutex
	books map[string]entities.Book
	order []string
	calls int
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{books: make(map[string]entities.Book)}
}

func (m *memoryStore) isbnTaken(isbn *string, exceptID string) bool {
	if isbn == nil {
		return false
	}
	for id, b := range m.books {
		if id != exceptID && b.ISBN != nil && *b.ISBN == *isbn {
			return true
		}
	}
	return false
}

func (m *memoryStore) CreateBook(_ context.Context, book *entities.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.isbnTaken(book.ISBN, "") {
		return library.ErrDuplicateISBN
	}
	book.ID = uuid.NewString()
	m.books[book.ID] = *book
	m.order = append(m.order, book.ID)
	return nil
}

func (m *memoryStore) ListBooks(context.Context) ([]entities.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var books []entities.Book
	for _, id := range m.order {
		if b, ok := m.books[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

func (m *memoryStore) GetBookByID(_ context.Context, id string) (*entities.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.books[id]
	if !ok {
		return nil, library.ErrBookNotFound
	}
	return &b, nil
}

func (m *memoryStore) ReplaceBook(_ context.Context, book *entities.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.books[book.ID]; !ok {
		return library.ErrBookNotFound
	}
	if m.isbnTaken(book.ISBN, book.ID) {
		return library.ErrDuplicateISBN
	}
	m.books[book.ID] = *book
	return nil
}

func (m *memoryStore) DeleteBook(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.books[id]; !ok {
		return library.ErrBookNotFound
	}
	delete(m.books, id)
	return nil
}

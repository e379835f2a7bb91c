package books

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/ebookshelf/internal/database"
	"github.com/mrlokans/ebookshelf/internal/entities"
	"github.com/mrlokans/ebookshelf/internal/library"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db.DB
}

func strPtr(s string) *string {
	return &s
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	book := &entities.Book{
		Title:      "Dune",
		Author:     "Herbert",
		ISBN:       strPtr("9780441013593"),
		CoverImage: strPtr("1-cover.jpg"),
		File:       strPtr("1-dune.epub"),
	}
	require.NoError(t, repo.CreateBook(ctx, book))

	_, err := uuid.Parse(book.ID)
	require.NoError(t, err, "expected a UUID id")

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Herbert", got.Author)
	assert.Equal(t, "9780441013593", *got.ISBN)
	assert.Equal(t, "1-cover.jpg", *got.CoverImage)
	assert.Equal(t, "1-dune.epub", *got.File)
}

func TestRepository_GetMissing(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetBookByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, library.ErrBookNotFound)
}

func TestRepository_DuplicateISBN(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "A", Author: "X", ISBN: strPtr("0306406152")}))

	err := repo.CreateBook(ctx, &entities.Book{Title: "B", Author: "Y", ISBN: strPtr("0306406152")})
	assert.ErrorIs(t, err, library.ErrDuplicateISBN)
}

func TestRepository_MissingISBNIsNotUnique(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "A", Author: "X"}))
	require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "B", Author: "Y"}))

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestRepository_ConcurrentDuplicateISBN(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateBook(ctx, &entities.Book{Title: "Same", Author: "Twin", ISBN: strPtr("9780441013593")})
		}(i)
	}
	wg.Wait()

	succeeded, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, library.ErrDuplicateISBN):
			duplicates++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicates)
}

func TestRepository_ListInsertionOrder(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		require.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: title, Author: "A"}))
	}

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "First", books[0].Title)
	assert.Equal(t, "Second", books[1].Title)
	assert.Equal(t, "Third", books[2].Title)
}

func TestRepository_ReplaceBook(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	book := &entities.Book{
		Title:      "Old",
		Author:     "Old Author",
		ISBN:       strPtr("0306406152"),
		CoverImage: strPtr("1-cover.jpg"),
		File:       strPtr("1-book.pdf"),
	}
	require.NoError(t, repo.CreateBook(ctx, book))

	t.Run("clears absent fields", func(t *testing.T) {
		replacement := &entities.Book{ID: book.ID, Title: "New", Author: "New Author"}
		require.NoError(t, repo.ReplaceBook(ctx, replacement))

		got, err := repo.GetBookByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "New Author", got.Author)
		assert.Nil(t, got.ISBN)
		assert.Nil(t, got.CoverImage)
		assert.Nil(t, got.File)
		assert.Equal(t, book.CreatedAt.Unix(), replacement.CreatedAt.Unix())
	})

	t.Run("reports missing book", func(t *testing.T) {
		err := repo.ReplaceBook(ctx, &entities.Book{ID: uuid.NewString(), Title: "T", Author: "A"})
		assert.ErrorIs(t, err, library.ErrBookNotFound)
	})

	t.Run("reports ISBN taken by another book", func(t *testing.T) {
		other := &entities.Book{Title: "Other", Author: "B", ISBN: strPtr("9780441013593")}
		require.NoError(t, repo.CreateBook(ctx, other))

		err := repo.ReplaceBook(ctx, &entities.Book{ID: book.ID, Title: "T", Author: "A", ISBN: strPtr("9780441013593")})
		assert.ErrorIs(t, err, library.ErrDuplicateISBN)
	})

	t.Run("keeping own ISBN is allowed", func(t *testing.T) {
		err := repo.ReplaceBook(ctx, &entities.Book{ID: book.ID, Title: "T", Author: "A", ISBN: strPtr("0306406152")})
		assert.NoError(t, err)

		err = repo.ReplaceBook(ctx, &entities.Book{ID: book.ID, Title: "T2", Author: "A", ISBN: strPtr("0306406152")})
		assert.NoError(t, err)
	})
}

func TestRepository_DeleteBook(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	book := &entities.Book{Title: "Gone", Author: "Soon", ISBN: strPtr("0306406152")}
	require.NoError(t, repo.CreateBook(ctx, book))

	require.NoError(t, repo.DeleteBook(ctx, book.ID))

	_, err := repo.GetBookByID(ctx, book.ID)
	assert.ErrorIs(t, err, library.ErrBookNotFound)

	assert.ErrorIs(t, repo.DeleteBook(ctx, book.ID), library.ErrBookNotFound)

	// The ISBN is free again once the record is gone
	assert.NoError(t, repo.CreateBook(ctx, &entities.Book{Title: "Back", Author: "Again", ISBN: strPtr("0306406152")}))
}

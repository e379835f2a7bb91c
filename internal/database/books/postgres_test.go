package books

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/ebookshelf/internal/entities"
	"github.com/mrlokans/ebookshelf/internal/library"
)

// setupPostgres connects to TEST_DATABASE_DSN and empties the books table.
func setupPostgres(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping PostgreSQL tests")
	}

	ctx := context.Background()
	repo, err := NewPostgresRepository(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	_, err = repo.pool.Exec(ctx, `TRUNCATE books`)
	require.NoError(t, err)
	return repo
}

func TestPostgresRepository_Lifecycle(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Dune", Author: "Herbert", ISBN: strPtr("9780441013593"), File: strPtr("1-dune.epub")}
	require.NoError(t, repo.CreateBook(ctx, book))
	require.NotEmpty(t, book.ID)

	got, err := repo.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "1-dune.epub", *got.File)
	assert.Nil(t, got.CoverImage)

	err = repo.CreateBook(ctx, &entities.Book{Title: "Copy", Author: "X", ISBN: strPtr("9780441013593")})
	assert.ErrorIs(t, err, library.ErrDuplicateISBN)

	replacement := &entities.Book{ID: book.ID, Title: "Dune Messiah", Author: "Herbert"}
	require.NoError(t, repo.ReplaceBook(ctx, replacement))
	assert.Nil(t, replacement.File)
	assert.Nil(t, replacement.ISBN)

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	require.NoError(t, repo.DeleteBook(ctx, book.ID))
	_, err = repo.GetBookByID(ctx, book.ID)
	assert.ErrorIs(t, err, library.ErrBookNotFound)
	assert.ErrorIs(t, repo.DeleteBook(ctx, book.ID), library.ErrBookNotFound)
}

func TestPostgresRepository_ReplaceMissing(t *testing.T) {
	repo := setupPostgres(t)

	err := repo.ReplaceBook(context.Background(), &entities.Book{ID: uuid.NewString(), Title: "T", Author: "A"})
	assert.ErrorIs(t, err, library.ErrBookNotFound)
}

package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/ebookshelf/internal/config"
	"github.com/mrlokans/ebookshelf/internal/entities"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	backend, err := Open(ctx, config.Database{Driver: config.DatabaseDriverSQLite, Path: filepath.Join(t.TempDir(), "open.db")}, false)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Ping(ctx))
	require.NoError(t, backend.CreateBook(ctx, &entities.Book{Title: "Dune", Author: "Frank Herbert"}))

	list, err := backend.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, config.Database{Driver: config.DatabaseDriverPostgres}, false)
	assert.ErrorContains(t, err, "DATABASE_DSN is required")

	_, err = Open(ctx, config.Database{Driver: "mysql"}, false)
	assert.ErrorContains(t, err, `unknown database driver "mysql"`)
}

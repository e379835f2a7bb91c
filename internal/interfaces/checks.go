package interfaces

// This file contains compile-time interface implementation checks.
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/ebookshelf/internal/database"
	"github.com/mrlokans/ebookshelf/internal/database/books"
	"github.com/mrlokans/ebookshelf/internal/http"
	"github.com/mrlokans/ebookshelf/internal/library"
	"github.com/mrlokans/ebookshelf/internal/uploads"
)

// =============================================================================
// Book Storage
// =============================================================================

var _ library.Store = (*books.Repository)(nil)
var _ library.Store = (*books.PostgresRepository)(nil)
var _ library.Store = (*books.Backend)(nil)

// =============================================================================
// Blob Storage
// =============================================================================

var _ library.FileStore = (*uploads.Store)(nil)

// =============================================================================
// Health Checks
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*books.PostgresRepository)(nil)
var _ http.Pinger = (*books.Backend)(nil)
var _ http.Pinger = (*uploads.Store)(nil)

// Package interfaces documents the core abstractions of the service and
// holds compile-time checks that the concrete types satisfy them.
//
// # Interfaces
//
//   - library.Store: persistence of book records (internal/library/interfaces.go).
//     Implemented by books.Repository (SQLite via GORM) and
//     books.PostgresRepository (pgx). Implementations translate backend
//     errors into library.ErrBookNotFound and library.ErrDuplicateISBN.
//   - library.FileStore: uploaded blobs (internal/library/interfaces.go).
//     Implemented by uploads.Store, a local directory.
//   - http.Pinger: liveness of a dependency for /health (internal/http/health.go).
//
// # Adding a Storage Backend
//
//  1. Implement library.Store in internal/database/books.
//  2. Add a driver constant in internal/config and a case in books.Open.
//  3. Add a check to checks.go.
package interfaces

// Package database opens the application database and migrates its schema.
//
// # Architecture
//
//	database/
//	├── database.go      # SQLite connection setup and migrations (GORM)
//	└── books/           # Book record repositories
//	    ├── open.go        # driver selection (Open)
//	    ├── repository.go  # GORM implementation (SQLite)
//	    └── postgres.go    # pgx implementation (PostgreSQL)
//
// # Usage
//
//	db, err := database.NewDatabase("./ebooks.db")
//	repo := books.NewRepository(db.DB)
//	svc := library.NewService(repo, uploadStore)
//
// Both repositories satisfy library.Store and report missing records and
// ISBN collisions with library.ErrBookNotFound and library.ErrDuplicateISBN.
package database

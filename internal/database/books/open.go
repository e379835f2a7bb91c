package books

import (
	"context"
	"fmt"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/ebookshelf/internal/config"
	"github.com/mrlokans/ebookshelf/internal/database"
	"github.com/mrlokans/ebookshelf/internal/library"
)

// Backend is an opened book store together with its lifecycle hooks.
type Backend struct {
	library.Store
	ping  func(ctx context.Context) error
	close func() error
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.ping(ctx)
}

func (b *Backend) Close() error {
	return b.close()
}

// Open connects to the store selected by cfg.Driver. verbose raises the
// GORM log level to Info.
func Open(ctx context.Context, cfg config.Database, verbose bool) (*Backend, error) {
	switch cfg.Driver {
	case config.DatabaseDriverSQLite, "":
		opts := database.Options{}
		if verbose {
			opts.LogLevel = logger.Info
		}
		db, err := database.NewDatabaseWithOptions(cfg.Path, opts)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: NewRepository(db.DB), ping: db.Ping, close: db.Close}, nil

	case config.DatabaseDriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for the %s driver", cfg.Driver)
		}
		repo, err := NewPostgresRepository(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: repo, ping: repo.Ping, close: repo.Close}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

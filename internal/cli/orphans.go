package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/ebookshelf/internal/config"
	"github.com/mrlokans/ebookshelf/internal/database/books"
	"github.com/mrlokans/ebookshelf/internal/entities"
	"github.com/mrlokans/ebookshelf/internal/uploads"
)

// OrphansCommand lists uploaded blobs that no book references. Deleting
// or updating a book leaves its old blobs behind; this command only
// reports them.
type OrphansCommand struct {
	Database   config.Database
	UploadsDir string
	Out        io.Writer
}

func NewOrphansCommand(cfg *config.Config) *OrphansCommand {
	return &OrphansCommand{
		Database:   cfg.Database,
		UploadsDir: cfg.Uploads.Dir,
		Out:        os.Stdout,
	}
}

func (cmd *OrphansCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("orphans", flag.ContinueOnError)

	driver := string(cmd.Database.Driver)
	fs.StringVar(&driver, "driver", driver, "Database driver: sqlite or postgres")
	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the SQLite database")
	fs.StringVar(&cmd.Database.DSN, "dsn", cmd.Database.DSN, "Postgres connection string")
	fs.StringVar(&cmd.UploadsDir, "uploads", cmd.UploadsDir, "Uploads directory")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s orphans [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List uploaded files that are not referenced by any book.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s orphans -db ./ebooks.db -uploads ./uploads\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.Database.Driver = config.DatabaseDriver(driver)
	return nil
}

func (cmd *OrphansCommand) Run(ctx context.Context) error {
	backend, err := books.Open(ctx, cmd.Database, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	files, err := uploads.NewStore(cmd.UploadsDir)
	if err != nil {
		return err
	}

	list, err := backend.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}
	names, err := files.Names()
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}

	orphans := FindOrphans(list, names)
	for _, name := range orphans {
		fmt.Fprintln(cmd.Out, name)
	}
	fmt.Fprintf(os.Stderr, "%d of %d uploaded files are not referenced by any book\n", len(orphans), len(names))
	return nil
}

// FindOrphans returns the names not referenced as cover or file by any
// book, in their original order.
func FindOrphans(list []entities.Book, names []string) []string {
	referenced := make(map[string]struct{}, len(list)*2)
	for _, b := range list {
		if b.CoverImage != nil {
			referenced[*b.CoverImage] = struct{}{}
		}
		if b.File != nil {
			referenced[*b.File] = struct{}{}
		}
	}

	var orphans []string
	for _, name := range names {
		if _, ok := referenced[name]; !ok {
			orphans = append(orphans, name)
		}
	}
	return orphans
}

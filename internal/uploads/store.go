// Package uploads stores uploaded book blobs in a local directory.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/ebookshelf/internal/library"
	"github.com/mrlokans/ebookshelf/internal/utils"
)

// maxNameAttempts bounds the retries when a generated name is taken.
const maxNameAttempts = 100

var ErrInvalidName = errors.New("invalid stored file name")

// StoredName derives the on-disk name of an upload from its original name
// and the upload time: "<unix millis>-<sanitized original name>".
func StoredName(originalName string, t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + "-" + utils.SanitizeFilename(originalName)
}

// Store is a directory of uploaded blobs.
type Store struct {
	dir string
	now func() time.Time
}

var _ library.FileStore = (*Store)(nil)

// NewStore creates the directory if needed and checks it is writable.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	s := &Store{dir: dir, now: time.Now}
	if err := s.probe(); err != nil {
		return nil, err
	}
	return s, nil
}

// Ping checks that the directory still accepts writes.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.probe()
}

func (s *Store) probe() error {
	probe, err := os.CreateTemp(s.dir, ".probe_")
	if err != nil {
		return fmt.Errorf("uploads dir %s is not writable: %w", s.dir, err)
	}
	probe.Close()
	if err := os.Remove(probe.Name()); err != nil {
		return fmt.Errorf("remove probe file: %w", err)
	}
	return nil
}

// Save writes content under a fresh name and returns that name. The blob
// only becomes visible once fully written, and never replaces an
// existing one.
func (s *Store) Save(originalName string, content io.Reader) (string, error) {
	tmpFile, err := os.CreateTemp(s.dir, ".upload_tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmpFile, content); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	at := s.now()
	for i := 0; i < maxNameAttempts; i++ {
		name := StoredName(originalName, at.Add(time.Duration(i)*time.Millisecond))
		err := os.Link(tmpPath, filepath.Join(s.dir, name))
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("store upload: %w", err)
		}
	}
	return "", fmt.Errorf("store upload %q: no free name after %d attempts", originalName, maxNameAttempts)
}

// Open returns the blob stored under name.
func (s *Store) Open(name string) (*library.StoredFile, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %q is a directory", ErrInvalidName, name)
	}

	return &library.StoredFile{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Content: f,
	}, nil
}

// Names lists stored blobs, skipping in-progress temp files.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Dir returns the uploads directory path.
func (s *Store) Dir() string {
	return s.dir
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemBackend keeps each note as <id>.json in one directory.
type FilesystemBackend struct {
	dir    string
	logger *log.Logger
}

// NewFilesystemBackend creates dir if needed. Unreadable note files are
// skipped when listing and reported to logger, which may be nil.
func NewFilesystemBackend(dir string, logger *log.Logger) (*FilesystemBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("notes directory: %w", err)
	}
	return &FilesystemBackend{dir: dir, logger: logger}, nil
}

func (f *FilesystemBackend) Dir() string { return f.dir }

func (f *FilesystemBackend) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}

func (f *FilesystemBackend) logf(format string, v ...any) {
	if f.logger != nil {
		f.logger.Printf(format, v...)
	}
}

func (f *FilesystemBackend) GetAllNotes(ctx context.Context) ([]*Note, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	var notes []*Note
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(f.dir, e.Name()))
		if err != nil {
			f.logf("skipping %s: %v", e.Name(), err)
			continue
		}
		n, err := decodeNote(b)
		if err != nil {
			f.logf("skipping %s: %v", e.Name(), err)
			continue
		}
		notes = append(notes, n)
	}
	sortByUpdated(notes)
	return notes, nil
}

func (f *FilesystemBackend) GetNote(ctx context.Context, id string) (*Note, error) {
	b, err := os.ReadFile(f.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", id, err)
	}
	n, err := decodeNote(b)
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", id, err)
	}
	return n, nil
}

func (f *FilesystemBackend) SaveNote(ctx context.Context, n *Note) error {
	n.touch()
	return f.ImportNote(ctx, n)
}

// ImportNote writes n as is. The file is replaced atomically.
func (f *FilesystemBackend) ImportNote(ctx context.Context, n *Note) error {
	b, err := encodeNote(n)
	if err != nil {
		return fmt.Errorf("encoding note %s: %w", n.ID, err)
	}
	tmp, err := os.CreateTemp(f.dir, n.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("saving note %s: %w", n.ID, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("saving note %s: %w", n.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving note %s: %w", n.ID, err)
	}
	if err := os.Rename(tmp.Name(), f.path(n.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving note %s: %w", n.ID, err)
	}
	return nil
}

func (f *FilesystemBackend) CreateNote(ctx context.Context) (*Note, error) {
	n := NewNote()
	if err := f.ImportNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNote removes the note file. Deleting a missing note is not an error.
func (f *FilesystemBackend) DeleteNote(ctx context.Context, id string) error {
	err := os.Remove(f.path(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

func (f *FilesystemBackend) Close() error { return nil }

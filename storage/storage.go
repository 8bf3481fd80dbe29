// Package storage persists notes. Every backend implements Storage; the
// composite and encrypted backends wrap other backends.
package storage

import (
	"context"
	"errors"
	"sort"
)

var ErrNotFound = errors.New("note not found")

type Storage interface {
	// GetAllNotes returns every note, most recently updated first.
	GetAllNotes(ctx context.Context) ([]*Note, error)
	// GetNote returns ErrNotFound for an unknown id.
	GetNote(ctx context.Context, id string) (*Note, error)
	// SaveNote inserts or replaces n and sets n.UpdatedAt.
	SaveNote(ctx context.Context, n *Note) error
	// CreateNote stores and returns a new empty note.
	CreateNote(ctx context.Context) (*Note, error)
	DeleteNote(ctx context.Context, id string) error
	Close() error
}

// Importer is implemented by backends that can store a note exactly as
// given, timestamps included. Caches and migrations go through it so that
// copying a note does not look like editing it.
type Importer interface {
	ImportNote(ctx context.Context, n *Note) error
}

// importNote stores n without touching its timestamps when s allows it.
func importNote(ctx context.Context, s Storage, n *Note) error {
	if imp, ok := s.(Importer); ok {
		return imp.ImportNote(ctx, n)
	}
	return s.SaveNote(ctx, n.clone())
}

func sortByUpdated(notes []*Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

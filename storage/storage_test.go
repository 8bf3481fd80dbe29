package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newMemStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := OpenSQLite(":memory:", SQLiteDriverModernC)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newFSStore(t *testing.T) *FilesystemBackend {
	t.Helper()
	f, err := NewFilesystemBackend(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFilesystemBackend: %v", err)
	}
	return f
}

// fastKeys makes key derivation cheap for the duration of a test.
func fastKeys(t *testing.T) {
	t.Helper()
	old := keyIterations
	keyIterations = 1000
	t.Cleanup(func() { keyIterations = old })
}

func TestBackends(t *testing.T) {
	ctx := context.Background()
	fastKeys(t)

	backends := map[string]func(t *testing.T) Storage{
		"sqlite": func(t *testing.T) Storage { return newMemStore(t) },
		"filesystem": func(t *testing.T) Storage { return newFSStore(t) },
		"composite": func(t *testing.T) Storage {
			c, err := NewCompositeBackend(ctx, newMemStore(t), newFSStore(t))
			if err != nil {
				t.Fatal(err)
			}
			return c
		},
		"encrypted": func(t *testing.T) Storage {
			e, err := NewEncryptedBackend(ctx, newMemStore(t), []byte("correct horse"), nil)
			if err != nil {
				t.Fatal(err)
			}
			return e
		},
	}

	for name, mk := range backends {
		t.Run(name, func(t *testing.T) {
			testBackend(t, mk(t))
		})
	}
}

func testBackend(t *testing.T, s Storage) {
	ctx := context.Background()

	notes, err := s.GetAllNotes(ctx)
	if err != nil {
		t.Fatalf("GetAllNotes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("new store has %d notes", len(notes))
	}

	a, err := s.CreateNote(ctx)
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if a.ID == "" || a.Content != "" {
		t.Fatalf("CreateNote returned %+v", a)
	}
	got, err := s.GetNote(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.ID != a.ID || got.Content != "" {
		t.Errorf("got %+v, want empty note %s", got, a.ID)
	}

	time.Sleep(2 * time.Millisecond)
	b := NewNote()
	b.Content = "second\nnote"
	b.Properties["tag"] = "work"
	if err := s.SaveNote(ctx, b); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	got, err = s.GetNote(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Content != "second\nnote" {
		t.Errorf("content = %q", got.Content)
	}
	if got.Property("tag") != "work" {
		t.Errorf("properties = %v, want tag=work", got.Properties)
	}
	assertOrder(t, s, b.ID, a.ID)

	time.Sleep(2 * time.Millisecond)
	before := a.UpdatedAt
	a.Content = "first"
	if err := s.SaveNote(ctx, a); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	if !a.UpdatedAt.After(before) {
		t.Errorf("SaveNote should bump UpdatedAt")
	}
	assertOrder(t, s, a.ID, b.ID)

	if err := s.DeleteNote(ctx, a.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := s.GetNote(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetNote after delete: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteNote(ctx, a.ID); err != nil {
		t.Errorf("deleting a missing note: %v", err)
	}
	if _, err := s.GetNote(ctx, "no-such-note"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	assertOrder(t, s, b.ID)
}

func assertOrder(t *testing.T, s Storage, ids ...string) {
	t.Helper()
	notes, err := s.GetAllNotes(context.Background())
	if err != nil {
		t.Fatalf("GetAllNotes: %v", err)
	}
	if len(notes) != len(ids) {
		t.Fatalf("got %d notes, want %d", len(notes), len(ids))
	}
	for i, n := range notes {
		if n.ID != ids[i] {
			t.Fatalf("note %d is %s, want %s", i, n.ID, ids[i])
		}
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		content string
		limit   int
		want    string
	}{
		{"", 25, "(empty note)"},
		{"short", 25, "short"},
		{"title\nbody", 25, "title"},
		{"a rather long first line of text", 10, "a rathe..."},
		{"exactly10!", 10, "exactly10!"},
		{"ünïcödé title", 6, "ünï..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		n := &Note{Content: tt.content}
		if got := n.Preview(tt.limit); got != tt.want {
			t.Errorf("Preview(%q, %d) = %q, want %q", tt.content, tt.limit, got, tt.want)
		}
	}
}

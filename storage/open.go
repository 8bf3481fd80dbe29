package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/slzatz/termnotes/auth"
	"github.com/slzatz/termnotes/config"
)

const welcomeNote = `# Welcome to termnotes!

A vim-like terminal note-taking application.

## Navigation
- Tab - Switch between the note list and the editor
- j/k - Move down/up (in both the note list and the editor)
- h/l - Move left/right in the editor
- Ctrl-f/Ctrl-b - Page down/up, Ctrl-d/Ctrl-u - half page

## Notes
- :new - Create a new empty note
- o - Create a new note (note list focused)
- dd - Delete the selected note (note list focused, press twice)
- / ? n N - Find notes containing some text (note list focused)
- :delete - Delete the current note

## Editing
- i a A - Enter Insert mode, Esc - back to Normal mode
- x dd o O p P - Delete char, delete line, open line, paste
- v V - Visual and Visual-Line selection, then y or d
- u / Ctrl-r - Undo / redo
- / ? n N - Search

## Commands
- :w - Save the current note
- :e! - Discard changes and reload
- :q - Quit (refuses with unsaved changes), :q! - quit anyway
- :wq - Save and quit

Happy note-taking!
`

// Open builds the backend described by cfg and seeds a welcome note into
// empty storage. logger may be nil.
func Open(ctx context.Context, cfg config.Storage, logger *log.Logger) (Storage, error) {
	s, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := SeedWelcome(ctx, s); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// OpenBackend is Open without the welcome note, for tools that move notes
// between backends.
func OpenBackend(ctx context.Context, cfg config.Storage, logger *log.Logger) (Storage, error) {
	return open(ctx, cfg, cfg.Backend, logger)
}

func open(ctx context.Context, cfg config.Storage, backend string, logger *log.Logger) (Storage, error) {
	driver, err := ParseSQLiteDriver(cfg.SQLite.Driver)
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendComposite, "":
		fsb, err := NewFilesystemBackend(cfg.Filesystem.Directory, logger)
		if err != nil {
			return nil, err
		}
		return withCache(ctx, driver, fsb)

	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLite.Path, driver)

	case config.BackendPostgres:
		return OpenPostgres(cfg.Postgres.DSN)

	case config.BackendFilesystem:
		return NewFilesystemBackend(cfg.Filesystem.Directory, logger)

	case config.BackendGDrive:
		srv, err := auth.GetDriveService(ctx, cfg.GDrive.CredentialsPath, cfg.GDrive.TokenPath, auth.StdPrompt)
		if err != nil {
			return nil, err
		}
		d, err := NewDriveBackend(ctx, srv, cfg.GDrive.FolderName, logger)
		if err != nil {
			return nil, err
		}
		return withCache(ctx, driver, d)

	case config.BackendEncrypted:
		if cfg.Encrypted.Wraps == config.BackendEncrypted {
			return nil, fmt.Errorf("encrypted backend cannot wrap itself")
		}
		key, err := ReadKeyFile(cfg.Encrypted.KeyFile)
		if err != nil {
			return nil, err
		}
		inner, err := open(ctx, cfg, cfg.Encrypted.Wraps, logger)
		if err != nil {
			return nil, err
		}
		e, err := NewEncryptedBackend(ctx, inner, key, logger)
		if err != nil {
			inner.Close()
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// withCache puts an in-memory SQLite cache in front of persistent.
func withCache(ctx context.Context, driver SQLiteDriver, persistent Storage) (Storage, error) {
	cache, err := OpenSQLite(":memory:", driver)
	if err != nil {
		persistent.Close()
		return nil, err
	}
	c, err := NewCompositeBackend(ctx, cache, persistent)
	if err != nil {
		cache.Close()
		persistent.Close()
		return nil, err
	}
	return c, nil
}

// SeedWelcome stores the welcome note when s holds no notes.
func SeedWelcome(ctx context.Context, s Storage) error {
	notes, err := s.GetAllNotes(ctx)
	if err != nil {
		return err
	}
	if len(notes) > 0 {
		return nil
	}
	n := NewNote()
	n.Content = welcomeNote
	return s.SaveNote(ctx, n)
}

// CopyNotes copies every note of src into dst, keeping ids and timestamps.
// Notes already in dst are overwritten, so a copy can be repeated. It stops
// at a note src could not decrypt rather than copy the error marker.
func CopyNotes(ctx context.Context, dst, src Storage) (int, error) {
	notes, err := src.GetAllNotes(ctx)
	if err != nil {
		return 0, err
	}
	for i, n := range notes {
		if decryptFailed(n) {
			return i, fmt.Errorf("copying note %s: %w", n.ID, ErrDecryptionFailed)
		}
		if err := importNote(ctx, dst, n); err != nil {
			return i, fmt.Errorf("copying note %s: %w", n.ID, err)
		}
	}
	return len(notes), nil
}

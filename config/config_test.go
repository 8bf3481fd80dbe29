package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points every lookup location at fresh temp directories.
func isolate(t *testing.T) (cwd, xdg, home string) {
	t.Helper()
	cwd, xdg, home = t.TempDir(), t.TempDir(), t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)
	return cwd, xdg, home
}

func TestLoadDefaults(t *testing.T) {
	_, _, home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Storage.Backend != BackendComposite {
		t.Errorf("backend = %q, want composite", cfg.Storage.Backend)
	}
	if got, want := cfg.Storage.Filesystem.Directory, filepath.Join(home, ".termnotes", "notes"); got != want {
		t.Errorf("directory = %q, want %q", got, want)
	}
	if cfg.Editor.UndoLevels != 1000 {
		t.Errorf("undo_levels = %d, want 1000", cfg.Editor.UndoLevels)
	}
}

func TestLoadPrecedence(t *testing.T) {
	cwd, xdg, home := isolate(t)

	writeFile(t, filepath.Join(home, ".termnotes.toml"), "[editor]\nundo_levels = 3\n")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.UndoLevels != 3 {
		t.Fatalf("home file not used, undo_levels = %d", cfg.Editor.UndoLevels)
	}

	writeFile(t, filepath.Join(xdg, "termnotes", "config.toml"), "[editor]\nundo_levels = 2\n")
	cfg, err = Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.UndoLevels != 2 {
		t.Fatalf("xdg file should win over home, undo_levels = %d", cfg.Editor.UndoLevels)
	}

	writeFile(t, filepath.Join(cwd, "termnotes.toml"), "[editor]\nundo_levels = 1\n")
	cfg, err = Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.UndoLevels != 1 {
		t.Fatalf("working directory file should win, undo_levels = %d", cfg.Editor.UndoLevels)
	}
	if cfg.Path != "termnotes.toml" {
		t.Errorf("Path = %q, want termnotes.toml", cfg.Path)
	}
	// untouched keys keep their defaults
	if cfg.Editor.SidebarWidth != 30 {
		t.Errorf("sidebar_width = %d, want 30", cfg.Editor.SidebarWidth)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad syntax", "[storage\n", "parsing"},
		{"unknown key", "[editor]\nundo = 3\n", "unknown keys"},
		{"unknown backend", "[storage]\nbackend = \"s3\"\n", "unknown storage backend"},
		{"unknown driver", "[storage.sqlite]\ndriver = \"cgo\"\n", "unknown sqlite driver"},
		{"postgres without dsn", "[storage]\nbackend = \"postgres\"\n", "dsn"},
		{"encrypted loop", "[storage]\nbackend = \"encrypted\"\n[storage.encrypted]\nwraps = \"encrypted\"\n", "itself"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			writeFile(t, path, tt.content)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got error %v, want one mentioning %q", err, tt.want)
			}
		})
	}
}

func TestExampleConfigParses(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "termnotes.toml")
	if err := WriteExample(path, ExampleOptions{}); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}
	if err := WriteExample(path, ExampleOptions{}); err == nil {
		t.Errorf("WriteExample should refuse to overwrite")
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	def := Default()
	def.expand()
	if cfg.Storage != def.Storage || cfg.Editor != def.Editor || cfg.Log != def.Log {
		t.Errorf("example config differs from defaults:\n got %+v\nwant %+v", cfg, def)
	}
}

func TestExampleOptions(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "termnotes.toml")
	opt := ExampleOptions{Backend: BackendEncrypted, Wraps: BackendSQLite, SQLitePath: "/srv/notes.db", DSN: "host=db dbname=notes"}
	if err := WriteExample(path, opt); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Backend != BackendEncrypted {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendEncrypted)
	}
	if cfg.Storage.Encrypted.Wraps != BackendSQLite {
		t.Errorf("wraps = %q, want %q", cfg.Storage.Encrypted.Wraps, BackendSQLite)
	}
	if cfg.Storage.SQLite.Path != "/srv/notes.db" {
		t.Errorf("sqlite path = %q", cfg.Storage.SQLite.Path)
	}
	if cfg.Storage.Postgres.DSN != "host=db dbname=notes" {
		t.Errorf("dsn = %q", cfg.Storage.Postgres.DSN)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("NOTES_ROOT", "/srv/notes")

	tests := map[string]string{
		"":                  "",
		":memory:":          ":memory:",
		"~":                 "/home/tester",
		"~/notes.db":        "/home/tester/notes.db",
		"$NOTES_ROOT/a.db":  "/srv/notes/a.db",
		"/abs/path":         "/abs/path",
		"relative/file.txt": "relative/file.txt",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

// Package config loads termnotes settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendComposite  = "composite"
	BackendSQLite     = "sqlite"
	BackendPostgres   = "postgres"
	BackendFilesystem = "filesystem"
	BackendGDrive     = "gdrive"
	BackendEncrypted  = "encrypted"
)

type Config struct {
	Storage Storage `toml:"storage"`
	Editor  Editor  `toml:"editor"`
	Log     Log     `toml:"log"`

	// Path is the file the settings were read from, "" for defaults.
	Path string `toml:"-"`
}

type Storage struct {
	Backend    string     `toml:"backend"`
	SQLite     SQLite     `toml:"sqlite"`
	Postgres   Postgres   `toml:"postgres"`
	Filesystem Filesystem `toml:"filesystem"`
	GDrive     GDrive     `toml:"gdrive"`
	Encrypted  Encrypted  `toml:"encrypted"`
}

type SQLite struct {
	Path   string `toml:"path"`
	Driver string `toml:"driver"` // modernc or mattn
}

type Postgres struct {
	DSN string `toml:"dsn"`
}

type Filesystem struct {
	Directory string `toml:"directory"`
}

type GDrive struct {
	CredentialsPath string `toml:"credentials_path"`
	TokenPath       string `toml:"token_path"`
	FolderName      string `toml:"folder_name"`
}

// Encrypted wraps another backend. KeyFile holds the passphrase.
type Encrypted struct {
	Wraps   string `toml:"wraps"`
	KeyFile string `toml:"key_file"`
}

type Editor struct {
	UndoLevels   int `toml:"undo_levels"`
	SidebarWidth int `toml:"sidebar_width"`
}

type Log struct {
	File string `toml:"file"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Storage: Storage{
			Backend: BackendComposite,
			SQLite: SQLite{
				Path:   "~/.termnotes/notes.db",
				Driver: "modernc",
			},
			Filesystem: Filesystem{Directory: "~/.termnotes/notes"},
			GDrive: GDrive{
				CredentialsPath: "~/.termnotes/google_credentials.json",
				TokenPath:       "~/.termnotes/google_token.json",
				FolderName:      "termnotes",
			},
			Encrypted: Encrypted{
				Wraps:   BackendComposite,
				KeyFile: "~/.termnotes/key",
			},
		},
		Editor: Editor{
			UndoLevels:   1000,
			SidebarWidth: 30,
		},
		Log: Log{File: "~/.local/state/termnotes/termnotes.log"},
	}
}

// SearchPaths lists the config files Load looks at, in order.
func SearchPaths() []string {
	paths := []string{"termnotes.toml"}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "termnotes", "config.toml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "termnotes", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".termnotes.toml"))
	}
	return paths
}

// Load reads the first config file found in SearchPaths. Without one it
// returns the defaults.
func Load() (*Config, error) {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: %w", err)
		}
		return LoadFile(p)
	}
	cfg := Default()
	cfg.expand()
	return cfg, nil
}

// LoadFile reads one config file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.expand()
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendComposite, BackendSQLite, BackendPostgres, BackendFilesystem, BackendGDrive:
	case BackendEncrypted:
		if c.Storage.Encrypted.Wraps == BackendEncrypted {
			return errors.New("encrypted backend cannot wrap itself")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Storage.SQLite.Driver {
	case "", "modernc", "mattn":
	default:
		return fmt.Errorf("unknown sqlite driver %q", c.Storage.SQLite.Driver)
	}
	if c.Storage.Backend == BackendPostgres && c.Storage.Postgres.DSN == "" {
		return errors.New("postgres backend needs storage.postgres.dsn")
	}
	if c.Editor.UndoLevels < 0 {
		return errors.New("editor.undo_levels must not be negative")
	}
	return nil
}

func (c *Config) expand() {
	s := &c.Storage
	s.SQLite.Path = ExpandPath(s.SQLite.Path)
	s.Filesystem.Directory = ExpandPath(s.Filesystem.Directory)
	s.GDrive.CredentialsPath = ExpandPath(s.GDrive.CredentialsPath)
	s.GDrive.TokenPath = ExpandPath(s.GDrive.TokenPath)
	s.Encrypted.KeyFile = ExpandPath(s.Encrypted.KeyFile)
	c.Log.File = ExpandPath(c.Log.File)
}

// ExpandPath replaces a leading ~ with the home directory and expands
// environment variables. ":memory:" is left alone.
func ExpandPath(p string) string {
	if p == "" || p == ":memory:" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/slzatz/termnotes/config"
	"github.com/slzatz/termnotes/rawmode"
	"github.com/slzatz/termnotes/storage"
	"github.com/slzatz/termnotes/terminal"
)

// openLog returns the application logger writing to path.
func openLog(path string) (*log.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "termnotes: ", log.Ltime|log.Lshortfile), f, nil
}

func main() {
	configPath := flag.String("config", "", "config file (default: search ./termnotes.toml, $XDG_CONFIG_HOME/termnotes/config.toml, ~/.termnotes.toml)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatal(err)
	}

	logger, logFile, err := openLog(cfg.Log.File)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	if cfg.Path != "" {
		logger.Printf("using config %s", cfg.Path)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		log.Fatal(err)
	}
	logger.Printf("storage backend: %s", cfg.Storage.Backend)

	app := NewApp(ctx, cfg, store, logger, os.Stdout)

	origCfg, err := rawmode.Enable()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error enabling raw mode: %v\n", err)
		os.Exit(1)
	}
	app.Session.origTermCfg = origCfg

	if err := app.Screen.GetWindowSize(); err != nil {
		app.Cleanup()
		fmt.Fprintf(os.Stderr, "Error getting window size: %v\n", err)
		os.Exit(1)
	}
	setupSignalHandling(app)

	if err := app.LoadInitialData(); err != nil {
		app.Cleanup()
		fmt.Fprintf(os.Stderr, "Error loading notes: %v\n", err)
		os.Exit(1)
	}

	app.MainLoop(terminal.NewReader(os.Stdin))
	app.Cleanup()
}

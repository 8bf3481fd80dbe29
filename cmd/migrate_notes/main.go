// migrate_notes copies every note from the storage described by one config
// file into the storage described by another, keeping ids and timestamps.
//
// Usage: migrate_notes -from old.toml -to new.toml
//
// Notes already present in the destination are overwritten, so the copy can
// be run more than once.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/slzatz/termnotes/config"
	"github.com/slzatz/termnotes/storage"
)

func openStore(ctx context.Context, path string, logger *log.Logger) (storage.Storage, string, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	s, err := storage.OpenBackend(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s storage from %s: %w", cfg.Storage.Backend, path, err)
	}
	return s, cfg.Storage.Backend, nil
}

func main() {
	from := flag.String("from", "", "config file of the storage to copy from")
	to := flag.String("to", "", "config file of the storage to copy into")
	flag.Parse()

	if *from == "" || *to == "" {
		fmt.Println("Usage: migrate_notes -from old.toml -to new.toml")
		fmt.Println("\nThis utility copies all termnotes notes between two storage backends.")
		os.Exit(1)
	}

	ctx := context.Background()
	logger := log.New(os.Stderr, "migrate_notes: ", log.Ltime)

	src, srcBackend, err := openStore(ctx, *from, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	dst, dstBackend, err := openStore(ctx, *to, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer dst.Close()

	fmt.Printf("Copying notes from %s (%s) to %s (%s)\n", *from, srcBackend, *to, dstBackend)
	n, err := storage.CopyNotes(ctx, dst, src)
	if err != nil {
		fmt.Printf("Copied %d notes before failing: %v\n", n, err)
		os.Exit(1)
	}
	fmt.Printf("Copied %d notes\n", n)
}

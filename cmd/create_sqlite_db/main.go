// create_sqlite_db sets up a local termnotes installation: a config file
// using the sqlite backend, the database with its welcome note and,
// optionally, a key file for the encrypted backend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/slzatz/termnotes/config"
	"github.com/slzatz/termnotes/storage"
)

func ask(reader *bufio.Reader, question string) bool {
	fmt.Print(question + " (y or N): ")
	res, _ := reader.ReadString('\n')
	res = strings.ToLower(strings.TrimSpace(res))
	return res != "" && res[:1] == "y"
}

func main() {
	reader := bufio.NewReader(os.Stdin)
	cfg := config.Default()
	cfg.Storage.SQLite.Path = config.ExpandPath(cfg.Storage.SQLite.Path)
	keyFile := config.ExpandPath(cfg.Storage.Encrypted.KeyFile)

	if !ask(reader, "Do you want to create a new local (sqlite) notes database?") {
		fmt.Println("exiting ...")
		return
	}

	fmt.Printf("Where should the database go? [%s] ", cfg.Storage.SQLite.Path)
	res, _ := reader.ReadString('\n')
	if res = strings.TrimSpace(res); res != "" {
		cfg.Storage.SQLite.Path = config.ExpandPath(res)
	}
	path := cfg.Storage.SQLite.Path
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s already exists - only the welcome note will be added if it is empty\n", path)
	}

	driver, err := storage.ParseSQLiteDriver(cfg.Storage.SQLite.Driver)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal(err)
	}
	db, err := storage.OpenSQLite(path, driver)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.SeedWelcome(context.Background(), db); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created %s using the %s driver\n", path, driver)

	backend := config.BackendSQLite
	if ask(reader, "Do you want the note contents encrypted?") {
		if err := os.MkdirAll(filepath.Dir(keyFile), 0o700); err != nil {
			log.Fatal(err)
		}
		if err := storage.GenerateKeyFile(keyFile); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote a new key to %s - keep a copy somewhere safe\n", keyFile)
		backend = config.BackendEncrypted
	}

	if !ask(reader, "Do you want to create the config file?") {
		return
	}
	paths := config.SearchPaths()
	filename := paths[min(1, len(paths)-1)]
	opt := config.ExampleOptions{Backend: backend, Wraps: config.BackendSQLite, SQLitePath: path}
	if err := config.WriteExample(filename, opt); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s\n", filename)
}

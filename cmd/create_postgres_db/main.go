// create_postgres_db prepares a remote (postgres) database for termnotes:
// it creates the notes table, adds the welcome note and can write a config
// file pointing at the database.
//
// The database itself has to exist already: [postgres@...]$ createdb <database>
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/slzatz/termnotes/config"
	"github.com/slzatz/termnotes/storage"
)

func ask(reader *bufio.Reader, question string) bool {
	fmt.Print(question + " (y or N): ")
	res, _ := reader.ReadString('\n')
	res = strings.ToLower(strings.TrimSpace(res))
	return res != "" && res[:1] == "y"
}

func prompt(reader *bufio.Reader, question, def string) string {
	if def != "" {
		fmt.Printf("%s [%s] ", question, def)
	} else {
		fmt.Print(question + " ")
	}
	res, _ := reader.ReadString('\n')
	if res = strings.TrimSpace(res); res != "" {
		return res
	}
	return def
}

// quoteValue quotes a libpq connection string value when it needs it.
func quoteValue(s string) string {
	if s != "" && !strings.ContainsAny(s, ` '\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func main() {
	reader := bufio.NewReader(os.Stdin)
	if !ask(reader, "Do you want to create the tables for a new remote (postgres) database?") {
		fmt.Println("exiting ...")
		return
	}

	host := prompt(reader, "What is the host string for the database server?", "localhost")
	port := prompt(reader, "What is the port for the database server?", "5432")
	user := prompt(reader, "Who is the database user?", os.Getenv("USER"))
	fmt.Print("What is the user password? ")
	bpw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	dbName := prompt(reader, "What is the name of the database?", "termnotes")
	sslmode := prompt(reader, "Which sslmode should be used?", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteValue(host), quoteValue(port), quoteValue(user),
		quoteValue(string(bpw)), quoteValue(dbName), quoteValue(sslmode))

	db, err := storage.OpenPostgres(dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.SeedWelcome(context.Background(), db); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("The notes table is ready in %q\n", dbName)

	if !ask(reader, "Do you want to create the config file? (the password is stored in it)") {
		return
	}
	paths := config.SearchPaths()
	filename := paths[min(1, len(paths)-1)]
	opt := config.ExampleOptions{Backend: config.BackendPostgres, Wraps: config.BackendPostgres, DSN: dsn}
	if err := config.WriteExample(filename, opt); err != nil {
		log.Fatal(err)
	}
	if err := os.Chmod(filename, 0o600); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Wrote %s\n", filename)
}

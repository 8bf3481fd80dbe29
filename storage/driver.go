package storage

import (
	"database/sql"
	"fmt"
	"runtime"

	// Import postgres driver (available on all platforms)
	_ "github.com/lib/pq"
	// Import pure Go sqlite driver (available on all platforms)
	_ "modernc.org/sqlite"
)

// SQLiteDriver represents the available SQLite driver options
type SQLiteDriver int

const (
	SQLiteDriverModernC SQLiteDriver = iota // Pure Go implementation (modernc.org/sqlite)
	SQLiteDriverMattn                       // CGO implementation (mattn/go-sqlite3)
)

// ParseSQLiteDriver maps the config value to a driver. "mattn" falls back
// to the pure Go driver when the binary was built without cgo.
func ParseSQLiteDriver(name string) (SQLiteDriver, error) {
	switch name {
	case "", "modernc":
		return SQLiteDriverModernC, nil
	case "mattn":
		if !IsCGOSQLiteAvailable() {
			return SQLiteDriverModernC, nil
		}
		return SQLiteDriverMattn, nil
	}
	return SQLiteDriverModernC, fmt.Errorf("unknown sqlite driver %q", name)
}

// DriverName returns the driver name for sql.Open
func (d SQLiteDriver) DriverName() string {
	if d == SQLiteDriverMattn {
		return "sqlite3"
	}
	return "sqlite"
}

// String returns a human-readable name for the driver
func (d SQLiteDriver) String() string {
	if d == SQLiteDriverMattn {
		return "mattn/go-sqlite3 (CGO)"
	}
	return "modernc.org/sqlite (Pure Go)"
}

func (d SQLiteDriver) open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(d.DriverName(), dataSourceName)
}

// IsCGOSQLiteAvailable checks if the CGO SQLite driver is available
func IsCGOSQLiteAvailable() bool {
	// On Windows, CGO SQLite is never available
	if runtime.GOOS == "windows" {
		return false
	}
	return cgoSQLiteAvailable()
}

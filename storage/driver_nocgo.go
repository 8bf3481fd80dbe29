//go:build !cgo || windows

package storage

func cgoSQLiteAvailable() bool {
	return false
}

package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"
)

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	want := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	if err := saveToken(path, want); err != nil {
		t.Fatalf("saveToken: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}

	got, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("tokenFromFile: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGetDriveServiceMissingCredentials(t *testing.T) {
	dir := t.TempDir()
	_, err := GetDriveService(context.Background(), filepath.Join(dir, "missing.json"), filepath.Join(dir, "token.json"), StdPrompt)
	if err == nil {
		t.Fatalf("expected an error for a missing credentials file")
	}
}

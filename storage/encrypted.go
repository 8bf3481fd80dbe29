package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

const (
	EncryptionMethod = "chacha20poly1305-pbkdf2"

	propEncrypted     = "encrypted"
	propMethod        = "encryption_method"
	propDecryptFailed = "decryption_failed"
	saltContext       = "termnotes-salt"
	saltSize          = 16
)

// ErrDecryptionFailed is returned when writing back a note whose content
// could not be decrypted; the stored ciphertext is left alone.
var ErrDecryptionFailed = errors.New("note could not be decrypted")

// keyIterations is the PBKDF2 work factor.
var keyIterations = 600_000

// EncryptedBackend encrypts note content on the way into another backend
// and decrypts it on the way out. Ids, timestamps and properties stay in
// the clear.
type EncryptedBackend struct {
	backend Storage
	aead    cipher.AEAD
	logger  *log.Logger
}

// NewEncryptedBackend derives a key from passphrase and then encrypts any
// notes in backend that are still plain text. logger may be nil.
func NewEncryptedBackend(ctx context.Context, backend Storage, passphrase []byte, logger *log.Logger) (*EncryptedBackend, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("encryption passphrase is empty")
	}
	aead, err := chacha20poly1305.New(deriveKey(passphrase))
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	e := &EncryptedBackend{backend: backend, aead: aead, logger: logger}
	if _, err := e.Migrate(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// deriveKey stretches passphrase with PBKDF2-HMAC-SHA256. The salt is a
// BLAKE2b digest of the passphrase under a fixed context string, so only
// the passphrase has to be kept.
func deriveKey(passphrase []byte) []byte {
	h, _ := blake2b.New(saltSize, nil)
	h.Write([]byte(saltContext))
	h.Write(passphrase)
	salt := h.Sum(nil)
	return pbkdf2.Key(passphrase, salt, keyIterations, chacha20poly1305.KeySize, sha256.New)
}

// ReadKeyFile returns the passphrase stored in path without its trailing
// newline.
func ReadKeyFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return []byte(strings.TrimRight(string(b), "\r\n")), nil
}

// GenerateKeyFile writes a random passphrase to path, readable only by the
// user. It refuses to replace an existing key.
func GenerateKeyFile(path string) error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	if _, err := f.WriteString(base64.RawURLEncoding.EncodeToString(buf) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("writing key file: %w", err)
	}
	return f.Close()
}

func (e *EncryptedBackend) logf(format string, v ...any) {
	if e.logger != nil {
		e.logger.Printf(format, v...)
	}
}

// encrypt returns base64(nonce || ciphertext). Empty content stays empty.
func (e *EncryptedBackend) encrypt(content string) (string, error) {
	if content == "" {
		return "", nil
	}
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(content)+e.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := e.aead.Seal(nonce, nonce, []byte(content), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (e *EncryptedBackend) decrypt(content string) (string, error) {
	if content == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return "", err
	}
	ns := e.aead.NonceSize()
	if len(raw) < ns {
		return "", errors.New("encrypted content too short to contain nonce")
	}
	plain, err := e.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// sealed returns the copy of n that is handed to the wrapped backend.
func (e *EncryptedBackend) sealed(n *Note) (*Note, error) {
	content, err := e.encrypt(n.Content)
	if err != nil {
		return nil, fmt.Errorf("encrypting note %s: %w", n.ID, err)
	}
	c := n.clone()
	c.Content = content
	c.Properties[propEncrypted] = true
	c.Properties[propMethod] = EncryptionMethod
	return c, nil
}

// opened decrypts n. A note that cannot be decrypted is returned with an
// error marker as its content so the rest of the list stays usable.
func (e *EncryptedBackend) opened(n *Note) *Note {
	plain, err := e.decrypt(n.Content)
	if err != nil {
		e.logf("failed to decrypt note %s: %v", n.ID, err)
		c := n.clone()
		c.Content = fmt.Sprintf("[DECRYPTION FAILED: %v]", err)
		c.Properties[propDecryptFailed] = true
		return c
	}
	c := n.clone()
	c.Content = plain
	delete(c.Properties, propEncrypted)
	delete(c.Properties, propMethod)
	return c
}

func isEncrypted(n *Note) bool {
	v, _ := n.Properties[propEncrypted].(bool)
	return v
}

func decryptFailed(n *Note) bool {
	v, _ := n.Properties[propDecryptFailed].(bool)
	return v
}

// Migrate encrypts every note in the wrapped backend that is not marked
// encrypted and reports how many it changed.
func (e *EncryptedBackend) Migrate(ctx context.Context) (int, error) {
	notes, err := e.backend.GetAllNotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrating notes: %w", err)
	}
	count := 0
	for _, n := range notes {
		if isEncrypted(n) {
			continue
		}
		s, err := e.sealed(n)
		if err != nil {
			return count, err
		}
		if err := importNote(ctx, e.backend, s); err != nil {
			return count, fmt.Errorf("migrating note %s: %w", n.ID, err)
		}
		count++
	}
	if count > 0 {
		e.logf("migrated %d unencrypted note(s) to encrypted storage", count)
	}
	return count, nil
}

func (e *EncryptedBackend) GetAllNotes(ctx context.Context) ([]*Note, error) {
	notes, err := e.backend.GetAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Note, len(notes))
	for i, n := range notes {
		out[i] = e.opened(n)
	}
	return out, nil
}

func (e *EncryptedBackend) GetNote(ctx context.Context, id string) (*Note, error) {
	n, err := e.backend.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.opened(n), nil
}

// SaveNote encrypts a copy of n; n itself keeps its plain content and only
// picks up the new timestamps.
func (e *EncryptedBackend) SaveNote(ctx context.Context, n *Note) error {
	if decryptFailed(n) {
		e.logf("refusing to save note %s: it was never decrypted", n.ID)
		return fmt.Errorf("saving note %s: %w", n.ID, ErrDecryptionFailed)
	}
	s, err := e.sealed(n)
	if err != nil {
		return err
	}
	if err := e.backend.SaveNote(ctx, s); err != nil {
		return err
	}
	n.CreatedAt, n.UpdatedAt = s.CreatedAt, s.UpdatedAt
	return nil
}

func (e *EncryptedBackend) ImportNote(ctx context.Context, n *Note) error {
	if decryptFailed(n) {
		return fmt.Errorf("importing note %s: %w", n.ID, ErrDecryptionFailed)
	}
	s, err := e.sealed(n)
	if err != nil {
		return err
	}
	return importNote(ctx, e.backend, s)
}

// CreateNote stores an empty note, marked encrypted so migration leaves it
// alone.
func (e *EncryptedBackend) CreateNote(ctx context.Context) (*Note, error) {
	n := NewNote()
	if err := e.ImportNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (e *EncryptedBackend) DeleteNote(ctx context.Context, id string) error {
	return e.backend.DeleteNote(ctx, id)
}

func (e *EncryptedBackend) Close() error {
	return e.backend.Close()
}


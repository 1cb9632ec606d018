package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/kevharding/stockpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port.
// Values are encrypted with AES-256-GCM under a fixed application key before
// write and decrypted after read.
//
// The key is a compatibility data flow, not a security boundary: it ships
// with the client, so it offers no confidentiality against someone inspecting
// the binary. The threat model here is casual exposure of the local database
// file, nothing more.
type CredentialRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key.
}

// NewCredentialRepo creates a CredentialRepo. key must be 32 bytes.
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, key: key}
}

// Set stores or replaces the plaintext value under key, encrypting it first.
func (r *CredentialRepo) Set(ctx context.Context, key, plaintext string) error {
	encrypted, err := r.encrypt(plaintext)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO credentials (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	_, err = r.db.Writer.ExecContext(ctx, query, key, encrypted)
	if err != nil {
		return fmt.Errorf("set credential %q: %w", key, err)
	}
	return nil
}

// Get retrieves the decrypted plaintext for key. A missing row and an
// undecryptable row both return ("", nil): a corrupted entry behaves
// identically to an absent one and is never surfaced to callers.
func (r *CredentialRepo) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM credentials WHERE key = ?`
	var encrypted string
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get credential %q: %w", key, err)
	}

	plaintext, err := r.decrypt(encrypted)
	if err != nil {
		// Tampered or truncated ciphertext reads as absent.
		slog.Warn("credential undecryptable, treating as absent", "key", key, "error", err)
		return "", nil
	}
	return plaintext, nil
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (r *CredentialRepo) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM credentials WHERE key = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("delete credential %q: %w", key, err)
	}
	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}

package driven

import "context"

// CredentialStore defines the driven port for the encrypted local key-value
// surface. The adapter layer owns encryption/decryption; this interface
// operates on plaintext values at the domain boundary.
//
// Reads are deliberately forgiving: a missing entry and an undecryptable
// entry are indistinguishable to callers; both come back as ("", nil).
// A stored credential therefore never produces a read error; only the
// storage medium itself failing does.
type CredentialStore interface {
	// Set stores or replaces the plaintext value under key, encrypting it
	// before write.
	Set(ctx context.Context, key, plaintext string) error

	// Get retrieves the decrypted plaintext for key. Returns ("", nil) when
	// the key does not exist or its ciphertext cannot be decrypted.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes the entry for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

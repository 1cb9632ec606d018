package model

import "time"

// Credential holds one named credential value from the local encrypted store.
// The session uses exactly two keys: "token" and "role".
type Credential struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Well-known credential keys persisted by the session.
const (
	CredentialToken = "token"
	CredentialRole  = "role"
)

// Package models defines the persisted quietpage records. Timestamps are
// Unix milliseconds, matching the JSON documents kept in the key-value store.
package models

// User is an account record. Email is unique case-insensitively; Password is
// stored and compared in plaintext on purpose (the tool models the original
// behavior, it does not harden it).
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	Bio       string `json:"bio"`
}

// Package storage defines the durable key-value contract quietpage persists
// through, plus its backends. Every value is a complete JSON document and
// every Set replaces it atomically; there are no partial-write states.
package storage

import "context"

// Storage keys. Per-user page collections get their own key via PagesKey.
const (
	KeyUsers            = "users"
	KeyCurrentUser      = "currentUser"
	KeyPublishedStories = "publishedStories"
	KeyStoryViews       = "storyViews"
	KeyDarkMode         = "darkMode"
)

// PagesKey returns the storage key of one user's private page collection.
func PagesKey(userID string) string {
	return "pages_" + userID
}

// KeyValueStore describes durable string-keyed storage. Get reports absence
// through its second return value rather than an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

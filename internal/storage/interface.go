package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key holds no value
var ErrNotFound = errors.New("key not found")

// Storage is tab-scoped key/value storage. Values live no longer than the
// tab (browser session or shell session) that wrote them.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// TabKey scopes name to a single tab
func TabKey(tabID, name string) string {
	return "tab:" + tabID + ":" + name
}

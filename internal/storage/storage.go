// Package storage is the persisted client-side key/value store. It holds
// the access token written by the sign-in flow and the cached result
// report.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Well-known keys.
const (
	KeyAccessToken = "accessToken"
	KeyResultData  = "resultData"
)

// Storage is a small string key/value store with a manual lifecycle.
// Entries never expire.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Open selects a backend from a location string:
//
//	""  or "sqlite"     sqlite database at DefaultDBPath
//	"sqlite:<path>"     sqlite database at path
//	"memory"            process-local map
//	"redis://..."       redis server (go-redis URL syntax)
func Open(ctx context.Context, location string) (Storage, error) {
	switch {
	case location == "" || location == "sqlite":
		p, err := DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		return OpenSQLite(p)
	case strings.HasPrefix(location, "sqlite:"):
		p := strings.TrimPrefix(location, "sqlite:")
		if err := EnsureDir(p); err != nil {
			return nil, fmt.Errorf("create DB dir: %w", err)
		}
		return OpenSQLite(p)
	case location == "memory":
		return NewMemory(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return OpenRedis(ctx, location)
	}
	return nil, fmt.Errorf("unsupported storage location %q", location)
}

// ValidLocation reports whether Open understands location.
func ValidLocation(location string) bool {
	switch {
	case location == "", location == "sqlite", location == "memory",
		strings.HasPrefix(location, "sqlite:"),
		strings.HasPrefix(location, "redis://"),
		strings.HasPrefix(location, "rediss://"):
		return true
	}
	return false
}

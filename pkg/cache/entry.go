// Package cache provides short-lived caching of catalog pages with a
// Redis backend.
package cache

import (
	"time"
)

// Entry represents a cached catalog page body.
type Entry struct {
	// Data is the raw JSON response body for the page.
	Data []byte `json:"data"`

	// CachedAt is when we cached this response.
	CachedAt time.Time `json:"cached_at"`
}

// NewEntry creates a cache entry for a response body.
func NewEntry(data []byte) *Entry {
	return &Entry{
		Data:     data,
		CachedAt: time.Now(),
	}
}

// Age returns how long ago the entry was cached.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CachedAt)
}

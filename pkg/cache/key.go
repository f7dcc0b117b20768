package cache

import (
	"fmt"
	"strings"
)

// Key represents a unique identifier for a cached catalog page.
type Key struct {
	// Endpoint is the catalog endpoint path (e.g., "/artworks")
	Endpoint string

	// Page is the page number
	Page int

	// Limit is the requested page size
	Limit int
}

// String generates a deterministic cache key string.
// Format: catalog:endpoint:page=N:limit=P
//
// Example:
//
//	catalog:artworks:page=2:limit=12
func (k Key) String() string {
	parts := []string{"catalog"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	parts = append(parts, fmt.Sprintf("page=%d", k.Page))
	parts = append(parts, fmt.Sprintf("limit=%d", k.Limit))

	return strings.Join(parts, ":")
}

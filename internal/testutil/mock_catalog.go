// Package testutil provides testing utilities for the artwork catalog client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/articat/articat/pkg/catalog"
)

// MockCatalog is a configurable mock catalog API server for testing.
// It serves paginated artwork records the way the real catalog does,
// slicing a fixed record list by the page and limit query parameters.
type MockCatalog struct {
	server   *httptest.Server
	mu       sync.RWMutex
	records  []catalog.Artwork
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
	failures map[int]int // page number -> HTTP status to fail with

	// Tracking
	RequestCount int
	LastQuery    url.Values
}

// NewMockCatalog creates a mock catalog serving the given records.
func NewMockCatalog(records []catalog.Artwork) *MockCatalog {
	mock := &MockCatalog{
		records:  records,
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		failures: make(map[int]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastQuery = r.URL.Query()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.artworksHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL, usable as the client's base URL.
func (m *MockCatalog) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears tracking counters and injected failures.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastQuery = nil
	m.failures = make(map[int]int)
}

// SetHandler sets a custom handler for a specific path.
func (m *MockCatalog) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// FailPage makes requests for one page number return the given status.
func (m *MockCatalog) FailPage(pageNumber, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[pageNumber] = statusCode
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockCatalog) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// artworksHandler serves a page slice of the configured records.
func (m *MockCatalog) artworksHandler(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 12
	}

	m.mu.RLock()
	status, failed := m.failures[page]
	records := m.records
	m.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if failed {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error": "injected failure for page %d"}`, page)
		return
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	totalPages := (len(records) + limit - 1) / limit

	resp := struct {
		Pagination catalog.Pagination `json:"pagination"`
		Data       []catalog.Artwork  `json:"data"`
	}{
		Pagination: catalog.Pagination{
			Total:       len(records),
			Limit:       limit,
			TotalPages:  totalPages,
			CurrentPage: page,
		},
		Data: records[start:end],
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// GenerateArtworks builds n sequential artwork records for tests.
func GenerateArtworks(n int) []catalog.Artwork {
	records := make([]catalog.Artwork, n)
	for i := range records {
		records[i] = catalog.Artwork{
			ID:            i + 1,
			Title:         fmt.Sprintf("Artwork %d", i+1),
			PlaceOfOrigin: "Somewhere",
			ArtistDisplay: fmt.Sprintf("Artist %d", i+1),
			DateStart:     1900 + i,
			DateEnd:       1900 + i,
		}
	}
	return records
}

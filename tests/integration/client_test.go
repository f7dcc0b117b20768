package integration

import (
	"context"
	"testing"
	"time"

	"github.com/articat/articat/internal/testutil"
	"github.com/articat/articat/pkg/catalog"
	"github.com/articat/articat/pkg/selection"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

// newCachedClient builds a client against the mock catalog with the Redis
// page cache enabled.
func newCachedClient(t *testing.T, mock *testutil.MockCatalog, redisClient *redis.Client, ttl time.Duration) *catalog.Client {
	t.Helper()

	cfg := catalog.DefaultConfig()
	cfg.BaseURL = mock.URL()
	cfg.MinRequestInterval = 0
	cfg.Redis = redisClient
	cfg.CacheTTL = ttl

	client, err := catalog.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

// TestPageCacheRoundTrip verifies the full flow: cache miss → API request →
// cache store → cache hit with no second API request.
func TestPageCacheRoundTrip(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockCatalog(testutil.GenerateArtworks(30))
	defer mock.Close()

	client := newCachedClient(t, mock, redisClient, time.Minute)
	ctx := context.Background()

	page1, err := client.FetchPage(ctx, 2)
	if err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}
	if mock.GetRequestCount() != 1 {
		t.Fatalf("Request count after first fetch = %d, want 1", mock.GetRequestCount())
	}

	page2, err := client.FetchPage(ctx, 2)
	if err != nil {
		t.Fatalf("Second fetch failed: %v", err)
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("Request count after cached fetch = %d, want 1", mock.GetRequestCount())
	}

	if page1.Size() != page2.Size() {
		t.Fatalf("Cached page size = %d, want %d", page2.Size(), page1.Size())
	}
	for i := range page1.Records {
		if page1.Records[i].ID != page2.Records[i].ID {
			t.Errorf("Record %d: cached ID = %d, want %d", i, page2.Records[i].ID, page1.Records[i].ID)
		}
	}
}

// TestCacheExpiration verifies an expired entry triggers a fresh request.
func TestCacheExpiration(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockCatalog(testutil.GenerateArtworks(12))
	defer mock.Close()

	client := newCachedClient(t, mock, redisClient, time.Second)
	ctx := context.Background()

	if _, err := client.FetchPage(ctx, 1); err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if _, err := client.FetchPage(ctx, 1); err != nil {
		t.Fatalf("Fetch after expiry failed: %v", err)
	}
	if mock.GetRequestCount() != 2 {
		t.Errorf("Request count = %d, want 2 after TTL expiry", mock.GetRequestCount())
	}
}

// TestAccumulateAcrossPages runs a bulk selection end-to-end through the
// cached client.
func TestAccumulateAcrossPages(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockCatalog(testutil.GenerateArtworks(36))
	defer mock.Close()

	client := newCachedClient(t, mock, redisClient, time.Minute)
	acc := selection.NewAccumulator(client, selection.DefaultConfig())

	result := acc.Accumulate(context.Background(), "15", 1, nil)

	if result.Len() != 15 {
		t.Fatalf("Selection size = %d, want 15", result.Len())
	}
	if mock.GetRequestCount() != 2 {
		t.Errorf("Request count = %d, want 2 (pages 1 and 2)", mock.GetRequestCount())
	}
}

// TestAccumulateServedFromCache verifies a bulk selection reuses pages the
// table view has already fetched.
func TestAccumulateServedFromCache(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockCatalog(testutil.GenerateArtworks(24))
	defer mock.Close()

	client := newCachedClient(t, mock, redisClient, time.Minute)
	ctx := context.Background()

	// Simulates the table view rendering page 1.
	if _, err := client.FetchPage(ctx, 1); err != nil {
		t.Fatalf("Page fetch failed: %v", err)
	}
	before := mock.GetRequestCount()

	acc := selection.NewAccumulator(client, selection.DefaultConfig())
	result := acc.Accumulate(ctx, "12", 1, nil)

	if result.Len() != 12 {
		t.Fatalf("Selection size = %d, want 12", result.Len())
	}
	if got := mock.GetRequestCount(); got != before {
		t.Errorf("Request count = %d, want %d (page 1 should come from cache)", got, before)
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestManagerGetMiss(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient)

	_, err := manager.Get(context.Background(), Key{Endpoint: "/artworks", Page: 1, Limit: 12})
	if err != ErrCacheMiss {
		t.Errorf("Get on empty cache = %v, want ErrCacheMiss", err)
	}
}

func TestManagerSetGet(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient)
	ctx := context.Background()

	key := Key{Endpoint: "/artworks", Page: 1, Limit: 12}
	body := []byte(`{"pagination":{"total_pages":10},"data":[{"id":1}]}`)

	if err := manager.Set(ctx, key, NewEntry(body), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entry, err := manager.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(entry.Data) != string(body) {
		t.Errorf("Data = %q, want %q", entry.Data, body)
	}
}

func TestManagerSetZeroTTL(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient)
	ctx := context.Background()

	key := Key{Endpoint: "/artworks", Page: 2, Limit: 12}

	// Zero TTL disables caching: Set is a no-op and the key stays absent.
	if err := manager.Set(ctx, key, NewEntry([]byte("{}")), 0); err != nil {
		t.Fatalf("Set with zero TTL failed: %v", err)
	}

	if _, err := manager.Get(ctx, key); err != ErrCacheMiss {
		t.Errorf("Get after zero-TTL Set = %v, want ErrCacheMiss", err)
	}
}

func TestManagerDelete(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient)
	ctx := context.Background()

	key := Key{Endpoint: "/artworks", Page: 3, Limit: 12}

	if err := manager.Set(ctx, key, NewEntry([]byte("{}")), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := manager.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get(ctx, key); err != ErrCacheMiss {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
}

func TestManagerSetNilEntry(t *testing.T) {
	redisClient := setupTestRedis(t)
	manager := NewManager(redisClient)

	err := manager.Set(context.Background(), Key{Endpoint: "/artworks", Page: 1, Limit: 12}, nil, time.Minute)
	if err == nil {
		t.Error("Set with nil entry should fail")
	}
}

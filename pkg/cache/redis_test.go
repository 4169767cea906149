//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("TREESEARCH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TREESEARCH_TEST_REDIS_ADDR not set, skipping integration test")
	}

	c := NewRedisCache(addr, 0)
	defer c.Close()

	ctx := context.Background()
	key := "treesearch-test:redis-cache"
	defer c.Delete(ctx, key)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get() before Set = %v, %v, %v; want miss", ok, err, nil)
	}

	if err := c.Set(ctx, key, []byte("hello"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() after Set = %v, %v, %v; want hit", ok, err, data)
	}
	if string(data) != "hello" {
		t.Errorf("Get() = %q, want %q", data, "hello")
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("key should be gone after Delete")
	}
}

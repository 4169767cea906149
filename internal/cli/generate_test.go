package cli

import (
	"context"
	"testing"
	"time"

	"github.com/jlab-tracking/treesearch/pkg/cache"
	"github.com/jlab-tracking/treesearch/pkg/patterntree"
)

func testParams() patterntree.Params {
	return patterntree.Params{
		Name:     "test",
		MaxDepth: 2,
		Width:    100,
		ZPos:     []float64{0, 1, 2, 3},
		MaxSlope: 1,
	}
}

func TestGenerateWithCacheMissThenHit(t *testing.T) {
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	params := testParams()

	tree, info, err := generateWithCache(ctx, backend, params, 0)
	if err != nil {
		t.Fatalf("generateWithCache() error: %v", err)
	}
	if info.Hit {
		t.Error("first call should be a cache miss")
	}
	if tree.NumPatterns() == 0 {
		t.Error("generated tree should have at least one pattern")
	}

	tree2, info2, err := generateWithCache(ctx, backend, params, 0)
	if err != nil {
		t.Fatalf("generateWithCache() second call error: %v", err)
	}
	if !info2.Hit {
		t.Error("second call with identical params should be a cache hit")
	}
	if info2.Key != info.Key {
		t.Errorf("cache key changed between calls: %q vs %q", info.Key, info2.Key)
	}
	if tree2.Name != params.Name {
		t.Errorf("cached tree Name = %q, want %q", tree2.Name, params.Name)
	}
}

func TestGenerateWithCacheDifferentParamsMiss(t *testing.T) {
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	p1 := testParams()
	p2 := testParams()
	p2.MaxSlope = 2

	_, info1, err := generateWithCache(ctx, backend, p1, 0)
	if err != nil {
		t.Fatalf("generateWithCache() error: %v", err)
	}
	_, info2, err := generateWithCache(ctx, backend, p2, 0)
	if err != nil {
		t.Fatalf("generateWithCache() error: %v", err)
	}
	if info1.Key == info2.Key {
		t.Error("distinct params should produce distinct cache keys")
	}
	if info2.Hit {
		t.Error("distinct params should be a cache miss")
	}
}

func TestTtlHoursToDuration(t *testing.T) {
	cases := []struct {
		hours int
		want  time.Duration
	}{
		{0, 0},
		{-1, 0},
		{1, time.Hour},
		{24, 24 * time.Hour},
	}
	for _, c := range cases {
		if got := ttlHoursToDuration(c.hours); got != c.want {
			t.Errorf("ttlHoursToDuration(%d) = %v, want %v", c.hours, got, c.want)
		}
	}
}

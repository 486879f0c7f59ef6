package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type payload struct {
	Title string   `json:"title"`
	Links []string `json:"links"`
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	want := payload{Title: "headlines", Links: []string{"https://example.com/a"}}
	if err := c.Set("headlines:bbc", want, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	ok, err := c.Get("headlines:bbc", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want hit", ok, err)
	}
	if got.Title != want.Title || len(got.Links) != 1 || got.Links[0] != want.Links[0] {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	ok, err = c.Get("missing", &got)
	if err != nil || ok {
		t.Errorf("Get(missing) = %v, %v; want miss", ok, err)
	}
}

func TestFileCacheExpired(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set("article:x", payload{Title: "old"}, -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	ok, err := c.Get("article:x", &got)
	if err != nil || ok {
		t.Errorf("Get() = %v, %v; want miss for expired entry", ok, err)
	}
	if _, err := os.Stat(c.getFilePath("article:x")); !os.IsNotExist(err) {
		t.Errorf("expired cache file should be removed, stat error = %v", err)
	}
}

func TestFileCacheCorruptedEntry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if err := os.WriteFile(c.getFilePath("broken"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var got payload
	ok, err := c.Get("broken", &got)
	if err != nil || ok {
		t.Errorf("Get() = %v, %v; want miss", ok, err)
	}
}

func TestFileCacheCleanup(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set("fresh", payload{Title: "fresh"}, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set("stale", payload{Title: "stale"}, -time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := c.Cleanup(context.Background(), 0); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	if _, err := os.Stat(c.getFilePath("fresh")); err != nil {
		t.Errorf("fresh entry removed: %v", err)
	}
	if _, err := os.Stat(c.getFilePath("stale")); !os.IsNotExist(err) {
		t.Errorf("stale entry should be removed, stat error = %v", err)
	}
}

func TestFileCacheClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if err := c.Set("k", "v", time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache dir should be removed, stat error = %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"unbounded", 0},
		{"lru", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewMemoryCache(tt.size)
			if err != nil {
				t.Fatalf("NewMemoryCache() error = %v", err)
			}

			want := payload{Title: "a", Links: []string{"x"}}
			if err := c.Set("a", want, time.Hour); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			var got payload
			ok, err := c.Get("a", &got)
			if err != nil || !ok {
				t.Fatalf("Get() = %v, %v; want hit", ok, err)
			}
			if got.Title != "a" {
				t.Errorf("Title = %q, want %q", got.Title, "a")
			}

			// 返り値はコピーなので変更しても保存値に影響しない
			got.Links[0] = "changed"
			var again payload
			if _, err := c.Get("a", &again); err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if again.Links[0] != "x" {
				t.Errorf("cached value was mutated: %v", again.Links)
			}

			if err := c.Clear(); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if c.Len() != 0 {
				t.Errorf("Len() = %d after Clear, want 0", c.Len())
			}
		})
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	c, err := NewMemoryCache(2)
	if err != nil {
		t.Fatalf("NewMemoryCache() error = %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(k, k, time.Hour); err != nil {
			t.Fatalf("Set(%q) error = %v", k, err)
		}
	}

	var v string
	if ok, _ := c.Get("a", &v); ok {
		t.Error("oldest entry should be evicted")
	}
	if ok, _ := c.Get("c", &v); !ok || v != "c" {
		t.Errorf("Get(c) = %v, %q", ok, v)
	}
}

func TestMemoryCacheUnbounded(t *testing.T) {
	c, err := NewMemoryCache(0)
	if err != nil {
		t.Fatalf("NewMemoryCache() error = %v", err)
	}
	for i := range 500 {
		if err := c.Set(fmt.Sprintf("k%d", i), i, time.Hour); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if c.Len() != 500 {
		t.Errorf("Len() = %d, want 500", c.Len())
	}
	var v int
	if ok, _ := c.Get("k0", &v); !ok || v != 0 {
		t.Errorf("Get(k0) = %v, %d; want first entry kept", ok, v)
	}
}

func TestNewMemoryCacheNegativeSize(t *testing.T) {
	if _, err := NewMemoryCache(-1); err == nil {
		t.Error("NewMemoryCache(-1) should fail")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c, err := NewMemoryCache(0)
	if err != nil {
		t.Fatalf("NewMemoryCache() error = %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set("k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	now = now.Add(2 * time.Minute)

	var v string
	if ok, _ := c.Get("k", &v); ok {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestChainBackfill(t *testing.T) {
	front, _ := NewMemoryCache(0)
	back, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	chain := NewChain(time.Hour, front, nil, back)
	if chain.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", chain.Len())
	}

	if err := back.Set("k", payload{Title: "from disk"}, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	ok, err := chain.Get("k", &got)
	if err != nil || !ok || got.Title != "from disk" {
		t.Fatalf("Get() = %v, %v, %+v", ok, err, got)
	}

	var fromFront payload
	if ok, _ := front.Get("k", &fromFront); !ok || fromFront.Title != "from disk" {
		t.Errorf("front cache was not backfilled: %v %+v", ok, fromFront)
	}

	if err := chain.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if ok, _ := chain.Get("k", &got); ok {
		t.Error("Get() after Clear should miss")
	}
}

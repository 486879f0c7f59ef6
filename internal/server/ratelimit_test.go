package server

import (
	"testing"
	"time"
)

func TestRateLimiterRefill(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(true, 60, 1)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("a") {
		t.Fatal("second request should be limited")
	}

	// 60 req/min → 1秒で1トークン
	now = now.Add(time.Second)
	if !rl.Allow("a") {
		t.Error("request after refill should be allowed")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(false, 1, 1)
	for i := 0; i < 10; i++ {
		if !rl.Allow("a") {
			t.Fatalf("request %d limited while disabled", i)
		}
	}
	if rl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rl.Len())
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(true, 60, 5)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(5 * time.Minute)
	rl.Allow("new")

	rl.Cleanup(time.Minute)
	if rl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rl.Len())
	}
	if _, ok := rl.clients["new"]; !ok {
		t.Error("recent client was removed")
	}
}

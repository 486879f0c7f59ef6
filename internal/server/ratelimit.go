package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

const defaultEntryTTL = 10 * time.Minute

// RateLimiter はクライアントIPごとのトークンバケット
type RateLimiter struct {
	enabled bool
	rate    int // リクエスト/分
	burst   int // バースト許容数

	mu      sync.Mutex
	clients map[string]*clientRate
	now     func() time.Time
}

type clientRate struct {
	tokens    float64
	lastCheck time.Time
}

// NewRateLimiter は新しいレートリミッターを作成する
func NewRateLimiter(enabled bool, requestsPerMinute, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		enabled: enabled && requestsPerMinute > 0,
		rate:    requestsPerMinute,
		burst:   burst,
		clients: make(map[string]*clientRate),
		now:     time.Now,
	}
}

// Allow はリクエストを許可するか確認する
func (rl *RateLimiter) Allow(clientIP string) bool {
	if !rl.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cr, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientRate{
			tokens:    float64(rl.burst - 1),
			lastCheck: now,
		}
		return true
	}

	// トークンを補充
	elapsed := now.Sub(cr.lastCheck).Minutes()
	cr.tokens += elapsed * float64(rl.rate)
	if cr.tokens > float64(rl.burst) {
		cr.tokens = float64(rl.burst)
	}
	cr.lastCheck = now

	// トークンを消費
	if cr.tokens >= 1 {
		cr.tokens--
		return true
	}

	return false
}

// retryAfter は次のトークンが補充されるまでの秒数
func (rl *RateLimiter) retryAfter() int {
	sec := 60 / rl.rate
	if sec < 1 {
		return 1
	}
	return sec
}

// Middleware はレートリミットミドルウェアを返す
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.enabled || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		ip := getClientIP(r)
		if ip == nil {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.Allow(ip.String()) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Cleanup は ttl 以上アクセスのないエントリを削除する（定期実行用）
func (rl *RateLimiter) Cleanup(ttl time.Duration) {
	if ttl <= 0 {
		ttl = defaultEntryTTL
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	threshold := rl.now().Add(-ttl)
	for ip, cr := range rl.clients {
		if cr.lastCheck.Before(threshold) {
			delete(rl.clients, ip)
		}
	}
}

// Len は追跡中のクライアント数を返す
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

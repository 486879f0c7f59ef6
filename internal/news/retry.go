package news

import (
	"net/http"
	"strconv"
	"time"
)

const (
	defaultRetryWait = 60 * time.Second
	maxRetryWait     = 5 * time.Minute
)

// RetryTransport はレートリミット（429）に対するリトライを行うRoundTripper
type RetryTransport struct {
	Base       http.RoundTripper
	MaxRetries int

	// テスト用
	now func() time.Time
}

func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	var resp *http.Response
	var err error

	for i := 0; i <= t.MaxRetries; i++ {
		resp, err = base.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		// 429 Too Many Requests 以外はそのまま返す
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// リトライ上限に達したらそのまま返す
		if i == t.MaxRetries {
			return resp, nil
		}

		_ = resp.Body.Close()

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(t.getWaitDuration(resp)):
			continue
		}
	}

	return resp, nil
}

func (t *RetryTransport) getWaitDuration(resp *http.Response) time.Duration {
	now := time.Now
	if t.now != nil {
		now = t.now
	}

	// Retry-After ヘッダー（秒数またはHTTP日付）
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return clampWait(time.Duration(seconds) * time.Second)
		}
		if at, err := http.ParseTime(retryAfter); err == nil {
			return clampWait(at.Sub(now()))
		}
	}

	// X-RateLimit-Reset ヘッダー (Unix Timestamp)
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if resetTime, err := strconv.ParseInt(reset, 10, 64); err == nil {
			if wait := time.Unix(resetTime, 0).Sub(now()); wait > 0 {
				return clampWait(wait)
			}
		}
	}

	return defaultRetryWait
}

func clampWait(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > maxRetryWait {
		return maxRetryWait
	}
	return d
}

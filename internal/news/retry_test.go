package news

import (
	"net/http"
	"strconv"
	"testing"
	"time"
)

func TestRetryTransportWaitDuration(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rt := &RetryTransport{now: func() time.Time { return now }}

	tests := []struct {
		name   string
		header map[string]string
		want   time.Duration
	}{
		{
			name:   "retry-after seconds",
			header: map[string]string{"Retry-After": "5"},
			want:   5 * time.Second,
		},
		{
			name:   "retry-after http date",
			header: map[string]string{"Retry-After": now.Add(30 * time.Second).Format(http.TimeFormat)},
			want:   30 * time.Second,
		},
		{
			name:   "retry-after capped",
			header: map[string]string{"Retry-After": "86400"},
			want:   maxRetryWait,
		},
		{
			name:   "rate limit reset",
			header: map[string]string{"X-RateLimit-Reset": strconv.FormatInt(now.Add(10*time.Second).Unix(), 10)},
			want:   10 * time.Second,
		},
		{
			name:   "reset in the past",
			header: map[string]string{"X-RateLimit-Reset": strconv.FormatInt(now.Add(-time.Minute).Unix(), 10)},
			want:   defaultRetryWait,
		},
		{
			name:   "no headers",
			header: nil,
			want:   defaultRetryWait,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			for k, v := range tt.header {
				resp.Header.Set(k, v)
			}
			if got := rt.getWaitDuration(resp); got != tt.want {
				t.Errorf("getWaitDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

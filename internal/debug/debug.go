// Package debug は --debug 指定時の診断ログを扱う
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	enabled bool
	mu      sync.RWMutex
	logger  *slog.Logger
)

func init() {
	logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Enable はデバッグモードを有効化する
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable はデバッグモードを無効化する
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled はデバッグモードが有効かどうかを返す
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetOutput は出力先を差し替える
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Log はデバッグモード時にログを出力する
func Log(msg string, args ...any) {
	mu.RLock()
	on, l := enabled, logger
	mu.RUnlock()
	if !on {
		return
	}
	l.Debug(msg, args...)
}

// Since は開始時刻からの経過時間を付けてログを出力する
// defer debug.Since("fetch", time.Now()) の形で使う
func Since(msg string, start time.Time, args ...any) {
	Log(msg, append(args, "elapsed", time.Since(start))...)
}

// Package server は要約とニュースダイジェストのHTTP APIを提供する
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/newsdigest/newsum/internal/config"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/summary"
)

const instrumentationName = "github.com/newsdigest/newsum/internal/server"

// Backend はニュース一覧とダイジェストを提供する
// 通常は *digest.Service を渡す
type Backend interface {
	Headlines(ctx context.Context, query string) ([]news.Headline, error)
	Digest(ctx context.Context, url string) (*digest.Digest, error)
}

// EngineFunc はアルゴリズム名から要約エンジンを返す
type EngineFunc func(algorithm string) (summary.Engine, error)

// Server はAPIサーバー
type Server struct {
	settings         config.ResolvedServer
	defaultAlgorithm string

	backend     Backend
	engines     EngineFunc
	rateLimiter *RateLimiter
	logger      *slog.Logger
	tracer      trace.Tracer

	httpServer  *http.Server
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewServer は設定ストアから新しいサーバーを作成する
func NewServer(cfg *config.Store, backend Backend, engines EngineFunc) (*Server, error) {
	return newServer(*cfg.Server(), cfg.Summary().Algorithm, backend, engines, slog.Default())
}

func newServer(settings config.ResolvedServer, defaultAlgorithm string, backend Backend, engines EngineFunc, logger *slog.Logger) (*Server, error) {
	if backend == nil || engines == nil {
		return nil, errors.New("server: backend and engines are required")
	}
	if defaultAlgorithm == "" {
		defaultAlgorithm = summary.AlgorithmFrequency
	}

	// レートリミッター
	rateLimiter := NewRateLimiter(
		settings.RateLimitEnabled,
		settings.RateLimitRequestsPerMinute,
		settings.RateLimitBurst,
	)

	return &Server{
		settings:         settings,
		defaultAlgorithm: defaultAlgorithm,
		backend:          backend,
		engines:          engines,
		rateLimiter:      rateLimiter,
		logger:           logger,
		tracer:           otel.Tracer(instrumentationName),
		stopCleanup:      make(chan struct{}),
	}, nil
}

// Handler はHTTPハンドラーを返す
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// エンドポイント登録
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/summarize", s.handleSummarize)
	mux.HandleFunc("GET /v1/headlines", s.handleHeadlines)
	mux.HandleFunc("GET /v1/digest", s.handleDigest)

	// ミドルウェアチェーン（先頭が最も外側）
	return Chain(
		mux,
		RecoveryMiddleware(s.logger),
		RequestIDMiddleware,
		TracingMiddleware(s.tracer),
		LoggingMiddleware(s.logger),
		s.rateLimiter.Middleware,
	)
}

// Addr は待ち受けアドレスを返す
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.settings.Host, s.settings.Port)
}

// Start はサーバーを起動する。Shutdown されるまで戻らない
func (s *Server) Start() error {
	addr := s.Addr()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.settings.HTTPReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.settings.HTTPWriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.settings.HTTPIdleTimeout) * time.Second,
	}

	// レートリミッタークリーンアップ
	interval := time.Duration(s.settings.RateLimitCleanupInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	entryTTL := time.Duration(s.settings.RateLimitEntryTTL) * time.Second
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.rateLimiter.Cleanup(entryTTL)
			case <-s.stopCleanup:
				return
			}
		}
	}()

	s.logger.Info("starting server", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown はサーバーを停止する
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

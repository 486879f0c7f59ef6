// Package digest はニュース一覧の取得、記事のダウンロード、要約をまとめて扱う
package digest

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/newsdigest/newsum/internal/article"
	"github.com/newsdigest/newsum/internal/cache"
	"github.com/newsdigest/newsum/internal/debug"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/summary"
)

const instrumentationName = "github.com/newsdigest/newsum/internal/digest"

const (
	defaultTTL         = time.Hour
	defaultConcurrency = 4
)

// ErrNoSource はニュースソースが設定されていない場合のエラー
var ErrNoSource = errors.New("no news source configured")

// Fetcher は記事をダウンロードする
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*article.Article, error)
}

// analyzer はスコアリングの詳細を返せる要約エンジン
type analyzer interface {
	Analyze(text string) (*summary.Result, error)
}

// Stats は要約の統計情報
type Stats struct {
	SentenceCount int  `json:"sentence_count"`
	SelectedCount int  `json:"selected_count"`
	Passthrough   bool `json:"passthrough"`
}

// Digest は1件の記事とその要約
type Digest struct {
	Headline *news.Headline   `json:"headline,omitempty"`
	Article  *article.Article `json:"article,omitempty"`
	Summary  string           `json:"summary"`
	Stats    Stats            `json:"stats"`
	// DigestAll で個別の記事が失敗した場合のエラーメッセージ
	Error string `json:"error,omitempty"`
}

// Service はニュースソース、記事ダウンローダー、要約エンジンを組み合わせる
type Service struct {
	source  news.Source
	fetcher Fetcher
	engine  summary.Engine

	cache cache.Cache
	ttl   time.Duration

	tracer      trace.Tracer
	summarized  metric.Int64Counter
	fetchErrors metric.Int64Counter
	cacheHits   metric.Int64Counter
}

// Option は Service のオプション
type Option func(*serviceOptions)

type serviceOptions struct {
	cache          cache.Cache
	ttl            time.Duration
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithCache はニュース一覧と記事本文のキャッシュを設定する
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *serviceOptions) {
		o.cache = c
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithTracerProvider はトレーサープロバイダーを差し替える（既定はグローバル）
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *serviceOptions) {
		o.tracerProvider = tp
	}
}

// WithMeterProvider はメータープロバイダーを差し替える（既定はグローバル）
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *serviceOptions) {
		o.meterProvider = mp
	}
}

// New は Service を作成する
// source は nil でもよい（Headlines が ErrNoSource を返す）
func New(source news.Source, fetcher Fetcher, engine summary.Engine, opts ...Option) (*Service, error) {
	if fetcher == nil || engine == nil {
		return nil, errors.New("digest: fetcher and engine are required")
	}

	o := serviceOptions{
		ttl:            defaultTTL,
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	meter := o.meterProvider.Meter(instrumentationName)
	summarized, err := meter.Int64Counter("newsum.summaries",
		metric.WithDescription("Number of texts summarized"))
	if err != nil {
		return nil, errors.Wrap(err, "create summaries counter")
	}
	fetchErrors, err := meter.Int64Counter("newsum.fetch.errors",
		metric.WithDescription("Number of failed headline or article downloads"))
	if err != nil {
		return nil, errors.Wrap(err, "create fetch errors counter")
	}
	cacheHits, err := meter.Int64Counter("newsum.cache.hits",
		metric.WithDescription("Number of cache hits"))
	if err != nil {
		return nil, errors.Wrap(err, "create cache hits counter")
	}

	return &Service{
		source:      source,
		fetcher:     fetcher,
		engine:      engine,
		cache:       o.cache,
		ttl:         o.ttl,
		tracer:      o.tracerProvider.Tracer(instrumentationName),
		summarized:  summarized,
		fetchErrors: fetchErrors,
		cacheHits:   cacheHits,
	}, nil
}

// Headlines はニュース一覧を取得する
func (s *Service) Headlines(ctx context.Context, query string) (headlines []news.Headline, err error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	ctx, span := s.tracer.Start(ctx, "digest.Headlines", trace.WithAttributes(
		attribute.String("news.source", s.source.Name()),
		attribute.String("news.query", query),
	))
	defer func() { endSpan(span, err) }()

	key := "headlines:" + s.source.Name() + ":" + query
	if s.lookup(ctx, key, &headlines) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return headlines, nil
	}

	start := time.Now()
	headlines, err = s.source.Headlines(ctx, query)
	if err != nil {
		s.fetchErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "headlines")))
		return nil, err
	}
	debug.Since("headlines fetched", start, "source", s.source.Name(), "count", len(headlines))
	span.SetAttributes(attribute.Int("news.count", len(headlines)))

	s.store(key, headlines)
	return headlines, nil
}

// Article は記事をダウンロードする
func (s *Service) Article(ctx context.Context, url string) (a *article.Article, err error) {
	ctx, span := s.tracer.Start(ctx, "digest.Article", trace.WithAttributes(
		attribute.String("article.url", url),
	))
	defer func() { endSpan(span, err) }()

	key := "article:" + url
	var cached article.Article
	if s.lookup(ctx, key, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return &cached, nil
	}

	a, err = s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.fetchErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "article")))
		return nil, err
	}
	s.store(key, a)
	return a, nil
}

// Summarize はテキストを要約する
func (s *Service) Summarize(ctx context.Context, text string) (sum string, stats Stats, err error) {
	ctx, span := s.tracer.Start(ctx, "digest.Summarize")
	defer func() { endSpan(span, err) }()

	sum, stats, err = SummarizeWith(s.engine, text)
	if err != nil {
		return "", Stats{}, err
	}

	span.SetAttributes(
		attribute.Int("summary.sentences", stats.SentenceCount),
		attribute.Int("summary.selected", stats.SelectedCount),
		attribute.Bool("summary.passthrough", stats.Passthrough),
	)
	s.summarized.Add(ctx, 1)
	return sum, stats, nil
}

// Digest は記事をダウンロードして要約する
func (s *Service) Digest(ctx context.Context, url string) (*Digest, error) {
	a, err := s.Article(ctx, url)
	if err != nil {
		return nil, err
	}
	sum, stats, err := s.Summarize(ctx, a.Text)
	if err != nil {
		return nil, errors.Wrapf(err, "summarize %s", url)
	}
	return &Digest{Article: a, Summary: sum, Stats: stats}, nil
}

// DigestAll は複数のヘッドラインを並行にダウンロードして要約する
// 個別の失敗は Digest.Error に記録し、全体は中断しない
// 結果はヘッドラインと同じ順序で返す
func (s *Service) DigestAll(ctx context.Context, headlines []news.Headline, concurrency int) ([]Digest, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]Digest, len(headlines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range headlines {
		h := headlines[i]
		g.Go(func() error {
			results[i].Headline = &h
			d, err := s.Digest(gctx, h.URL)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				results[i].Error = err.Error()
				return nil
			}
			results[i].Article = d.Article
			results[i].Summary = d.Summary
			results[i].Stats = d.Stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SummarizeWith はエンジンでテキストを要約し、統計情報とともに返す
// スコアリングの詳細を返せないエンジンでは文数は0になる
func SummarizeWith(engine summary.Engine, text string) (string, Stats, error) {
	if a, ok := engine.(analyzer); ok {
		res, err := a.Analyze(text)
		if err != nil {
			return "", Stats{}, err
		}
		return res.Summary, Stats{
			SentenceCount: res.SentenceCount,
			SelectedCount: len(res.Selected),
			Passthrough:   res.Passthrough,
		}, nil
	}

	sum, err := engine.Summarize(text)
	if err != nil {
		return "", Stats{}, err
	}
	return sum, Stats{Passthrough: sum == text && text != ""}, nil
}

func (s *Service) lookup(ctx context.Context, key string, v any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(key, v)
	if err != nil {
		debug.Log("cache read failed", "key", key, "error", err)
		return false
	}
	if ok {
		s.cacheHits.Add(ctx, 1)
	}
	return ok
}

func (s *Service) store(key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(key, v, s.ttl); err != nil {
		debug.Log("cache write failed", "key", key, "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

package cmdutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/newsdigest/newsum/internal/article"
	"github.com/newsdigest/newsum/internal/cache"
	"github.com/newsdigest/newsum/internal/config"
	"github.com/newsdigest/newsum/internal/debug"
	"github.com/newsdigest/newsum/internal/digest"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/nlp"
	"github.com/newsdigest/newsum/internal/summary"
)

// プロセス全体で共有する言語モデル
var (
	modelMu sync.Mutex
	model   *nlp.Model
)

// Model はプロセスで共有する言語モデルを返す。初回呼び出し時にロードする
func Model() (*nlp.Model, error) {
	modelMu.Lock()
	defer modelMu.Unlock()

	if model != nil {
		return model, nil
	}
	m, err := nlp.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load language model: %w", err)
	}
	model = m
	return model, nil
}

// CloseModel は共有の言語モデルを解放する。未ロードなら何もしない
func CloseModel() error {
	modelMu.Lock()
	defer modelMu.Unlock()

	if model == nil {
		return nil
	}
	err := model.Close()
	model = nil
	return err
}

// SummaryOptions は要約設定をオプションに変換する
func SummaryOptions(s *config.ResolvedSummary) ([]summary.Option, error) {
	order, err := summary.ParseOrder(s.Order)
	if err != nil {
		return nil, err
	}
	return []summary.Option{
		summary.WithMinWords(s.MinWords),
		summary.WithRatio(s.Ratio),
		summary.WithOrder(order),
	}, nil
}

// NewEngine は設定から要約エンジンを作成する
// algorithm が空なら設定のアルゴリズムを使う。overrides は設定より優先される
func NewEngine(cfg *config.Store, algorithm string, overrides ...summary.Option) (summary.Engine, error) {
	s := cfg.Summary()
	if algorithm == "" {
		algorithm = s.Algorithm
	}

	opts, err := SummaryOptions(s)
	if err != nil {
		return nil, err
	}
	opts = append(opts, overrides...)

	m, err := Model()
	if err != nil {
		return nil, err
	}
	return summary.NewEngine(algorithm, m, nlp.NewLexicon(s.Stopwords...), opts...)
}

// EngineFactory はアルゴリズム名から設定済みのエンジンを作る関数を返す
func EngineFactory(cfg *config.Store) func(algorithm string) (summary.Engine, error) {
	return func(algorithm string) (summary.Engine, error) {
		return NewEngine(cfg, algorithm)
	}
}

// NewSource は設定からニュースソースを作成する
// newsapi のキーが未設定の場合は呼び出し時に ErrMissingAPIKey を返すソースになる
func NewSource(cfg *config.Store) (news.Source, error) {
	n := cfg.News()
	h := cfg.HTTP()

	newsAPI := func() news.Source {
		client, err := news.NewClient(n.APIKey,
			news.WithBaseURL(n.BaseURL),
			news.WithSources(n.Sources),
			news.WithLanguage(n.Language),
			news.WithPageSize(n.PageSize),
			news.WithHTTPTimeout(h.TimeoutDuration()),
			news.WithMaxRetries(h.MaxRetries),
		)
		if err != nil {
			return news.Unavailable("newsapi", err)
		}
		return client
	}
	feeds := func() news.Source {
		return news.NewFeedSource(n.Feeds,
			news.WithFeedConcurrency(cfg.Article().Concurrency),
		)
	}

	switch n.Provider {
	case "", "newsapi":
		return newsAPI(), nil
	case "feeds":
		if len(n.Feeds) == 0 {
			return nil, errors.New("news.feeds is empty; add feed URLs with 'newsum config set news.feeds <url,...>'")
		}
		return feeds(), nil
	case "all":
		sources := []news.Source{newsAPI()}
		if len(n.Feeds) > 0 {
			sources = append(sources, feeds())
		}
		return news.NewMulti(sources...), nil
	default:
		return nil, fmt.Errorf("unknown news provider: %s (want newsapi, feeds or all)", n.Provider)
	}
}

// NewCache は設定からキャッシュを作成する。無効な場合は nil を返す
func NewCache(cfg *config.Store) (cache.Cache, error) {
	c := cfg.Cache()
	if !c.Enabled {
		return nil, nil
	}

	mem, err := cache.NewMemoryCache(c.MemorySize)
	if err != nil {
		return nil, err
	}

	dir, err := c.GetCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache dir: %w", err)
	}
	file, err := cache.NewFileCache(dir)
	if err != nil {
		// ファイルキャッシュが使えなくてもメモリキャッシュで続行する
		debug.Log("file cache disabled", "dir", dir, "error", err)
		return mem, nil
	}
	return cache.NewChain(c.TTLDuration(), mem, file), nil
}

// NewFetcher は設定から記事ダウンローダーを作成する
func NewFetcher(cfg *config.Store) *article.Fetcher {
	a := cfg.Article()
	return article.NewFetcher(
		article.WithTimeout(a.TimeoutDuration()),
		article.WithUserAgent(a.UserAgent),
		article.WithMaxBytes(a.MaxBytes),
	)
}

// NewService は設定からダイジェストサービスを作成する
func NewService(cfg *config.Store) (*digest.Service, error) {
	source, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(cfg, "")
	if err != nil {
		return nil, err
	}
	c, err := NewCache(cfg)
	if err != nil {
		return nil, err
	}

	var opts []digest.Option
	if c != nil {
		opts = append(opts, digest.WithCache(c, cfg.Cache().TTLDuration()))
	}
	return digest.New(source, NewFetcher(cfg), engine, opts...)
}

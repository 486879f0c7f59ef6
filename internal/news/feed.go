package news

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/newsdigest/newsum/internal/debug"
)

const defaultFeedConcurrency = 4

// FeedSource は RSS/Atom フィードから見出しを取得する
type FeedSource struct {
	urls        []string
	httpClient  *http.Client
	concurrency int
}

// FeedOption はフィードソースのオプション
type FeedOption func(*FeedSource)

// WithFeedHTTPClient はフィード取得に使うHTTPクライアントを設定する
func WithFeedHTTPClient(c *http.Client) FeedOption {
	return func(f *FeedSource) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithFeedConcurrency は同時に取得するフィード数を設定する
func WithFeedConcurrency(n int) FeedOption {
	return func(f *FeedSource) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// NewFeedSource は新しいフィードソースを作成する
func NewFeedSource(urls []string, opts ...FeedOption) *FeedSource {
	f := &FeedSource{
		urls:        urls,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		concurrency: defaultFeedConcurrency,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name はソース名を返す
func (f *FeedSource) Name() string {
	return "feeds"
}

// Headlines は全てのフィードを取得し、クエリに一致する項目を返す
// 一部のフィードの取得に失敗しても、他のフィードの結果は返す
func (f *FeedSource) Headlines(ctx context.Context, query string) ([]Headline, error) {
	if len(f.urls) == 0 {
		return nil, errors.New("no feeds configured")
	}

	var (
		mu        sync.Mutex
		headlines []Headline
		failures  []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for _, feedURL := range f.urls {
		g.Go(func() error {
			items, err := f.fetch(ctx, feedURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				debug.Log("feed fetch failed", "url", feedURL, "error", err)
				failures = append(failures, errors.Wrapf(err, "fetch feed %s", feedURL))
				return nil
			}
			headlines = append(headlines, items...)
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == len(f.urls) {
		return nil, failures[0]
	}

	filtered := headlines[:0]
	for _, h := range headlines {
		if matchesQuery(h, query) {
			filtered = append(filtered, h)
		}
	}
	result := dedupeAndSort(filtered)
	if len(result) == 0 {
		return nil, errors.Wrapf(ErrNoArticles, "query %q", query)
	}
	return result, nil
}

func (f *FeedSource) fetch(ctx context.Context, feedURL string) ([]Headline, error) {
	fp := gofeed.NewParser()
	fp.Client = f.httpClient

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	headlines := make([]Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		h := Headline{
			Title:       strings.TrimSpace(item.Title),
			URL:         item.Link,
			Source:      strings.TrimSpace(feed.Title),
			Description: strings.TrimSpace(item.Description),
			Thumbnail:   itemThumbnail(item),
		}
		if item.PublishedParsed != nil {
			h.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			h.PublishedAt = *item.UpdatedParsed
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}

func itemThumbnail(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

package digest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/newsdigest/newsum/internal/article"
	"github.com/newsdigest/newsum/internal/cache"
	"github.com/newsdigest/newsum/internal/news"
	"github.com/newsdigest/newsum/internal/nlp"
	"github.com/newsdigest/newsum/internal/summary"
)

type fakeSource struct {
	mu        sync.Mutex
	calls     int
	headlines []news.Headline
	err       error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Headlines(ctx context.Context, query string) ([]news.Headline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.headlines, nil
}

type fakeFetcher struct {
	mu       sync.Mutex
	calls    map[string]int
	articles map[string]string
}

func newFakeFetcher(articles map[string]string) *fakeFetcher {
	return &fakeFetcher{calls: make(map[string]int), articles: articles}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*article.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	text, ok := f.articles[url]
	if !ok {
		return nil, &article.FetchError{URL: url, StatusCode: 404, Err: article.ErrUnexpectedStatus}
	}
	return &article.Article{URL: url, Title: "Title of " + url, Text: text}, nil
}

// firstWordEngine は先頭の単語だけを返す要約エンジン
type firstWordEngine struct{}

func (firstWordEngine) Summarize(text string) (string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

func newTestService(t *testing.T, src news.Source, f Fetcher, opts ...Option) *Service {
	t.Helper()
	svc, err := New(src, f, firstWordEngine{}, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(nil, nil, firstWordEngine{}); err == nil {
		t.Error("New() without fetcher should fail")
	}
	if _, err := New(nil, newFakeFetcher(nil), nil); err == nil {
		t.Error("New() without engine should fail")
	}
}

func TestHeadlinesCached(t *testing.T) {
	src := &fakeSource{headlines: []news.Headline{
		{Title: "One", URL: "https://example.com/1", PublishedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}}
	mem, err := cache.NewMemoryCache(0)
	if err != nil {
		t.Fatal(err)
	}
	svc := newTestService(t, src, newFakeFetcher(nil), WithCache(mem, time.Minute))

	for i := 0; i < 3; i++ {
		got, err := svc.Headlines(context.Background(), "q")
		if err != nil {
			t.Fatalf("Headlines() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "One" {
			t.Fatalf("Headlines() = %+v", got)
		}
		if !got[0].PublishedAt.Equal(src.headlines[0].PublishedAt) {
			t.Errorf("PublishedAt = %v", got[0].PublishedAt)
		}
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}

	// 異なるクエリは別のキー
	if _, err := svc.Headlines(context.Background(), "other"); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}

func TestHeadlinesErrors(t *testing.T) {
	svc := newTestService(t, nil, newFakeFetcher(nil))
	if _, err := svc.Headlines(context.Background(), ""); !errors.Is(err, ErrNoSource) {
		t.Errorf("error = %v, want ErrNoSource", err)
	}

	src := &fakeSource{err: news.ErrNoArticles}
	svc = newTestService(t, src, newFakeFetcher(nil))
	if _, err := svc.Headlines(context.Background(), ""); !errors.Is(err, news.ErrNoArticles) {
		t.Errorf("error = %v, want ErrNoArticles", err)
	}
}

func TestArticleCached(t *testing.T) {
	f := newFakeFetcher(map[string]string{"https://example.com/a": "Alpha beta."})
	mem, err := cache.NewMemoryCache(8)
	if err != nil {
		t.Fatal(err)
	}
	svc := newTestService(t, nil, f, WithCache(mem, time.Minute))

	for i := 0; i < 2; i++ {
		a, err := svc.Article(context.Background(), "https://example.com/a")
		if err != nil {
			t.Fatalf("Article() error = %v", err)
		}
		if a.Text != "Alpha beta." {
			t.Errorf("Text = %q", a.Text)
		}
	}
	if n := f.calls["https://example.com/a"]; n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
}

func TestDigest(t *testing.T) {
	f := newFakeFetcher(map[string]string{"https://example.com/a": "Alpha beta gamma."})
	svc := newTestService(t, nil, f)

	d, err := svc.Digest(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if d.Summary != "Alpha" {
		t.Errorf("Summary = %q, want %q", d.Summary, "Alpha")
	}
	if d.Article.Title != "Title of https://example.com/a" {
		t.Errorf("Title = %q", d.Article.Title)
	}

	_, err = svc.Digest(context.Background(), "https://example.com/missing")
	var fetchErr *article.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != 404 {
		t.Errorf("error = %v, want FetchError with status 404", err)
	}
}

func TestDigestStatsFromAnalyzer(t *testing.T) {
	model, err := nlp.Load()
	if err != nil {
		t.Fatalf("nlp.Load() error = %v", err)
	}
	defer func() { _ = model.Close() }()

	engine, err := summary.New(model, nlp.NewLexicon(), summary.WithMinWords(0))
	if err != nil {
		t.Fatal(err)
	}
	text := "Rivers rose overnight. Rivers flooded the valley roads. Officials closed schools. Rain will continue."
	f := newFakeFetcher(map[string]string{"https://example.com/a": text})
	svc, err := New(nil, f, engine)
	if err != nil {
		t.Fatal(err)
	}

	d, err := svc.Digest(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if d.Stats.SentenceCount != 4 || d.Stats.SelectedCount != 1 || d.Stats.Passthrough {
		t.Errorf("Stats = %+v", d.Stats)
	}
	if d.Summary != "Rivers flooded the valley roads." {
		t.Errorf("Summary = %q", d.Summary)
	}
}

func TestDigestAll(t *testing.T) {
	f := newFakeFetcher(map[string]string{
		"https://example.com/1": "First story text.",
		"https://example.com/3": "Third story text.",
	})
	svc := newTestService(t, nil, f)

	headlines := []news.Headline{
		{Title: "1", URL: "https://example.com/1"},
		{Title: "2", URL: "https://example.com/2"},
		{Title: "3", URL: "https://example.com/3"},
	}
	got, err := svc.DigestAll(context.Background(), headlines, 2)
	if err != nil {
		t.Fatalf("DigestAll() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	for i, d := range got {
		if d.Headline == nil || d.Headline.Title != headlines[i].Title {
			t.Errorf("[%d] Headline = %+v", i, d.Headline)
		}
	}
	if got[0].Summary != "First" || got[2].Summary != "Third" {
		t.Errorf("summaries = %q, %q", got[0].Summary, got[2].Summary)
	}
	if got[1].Error == "" || got[1].Article != nil {
		t.Errorf("[1] = %+v, want error", got[1])
	}
}

func TestDigestAllCanceled(t *testing.T) {
	svc := newTestService(t, nil, cancelingFetcher{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.DigestAll(ctx, []news.Headline{{URL: "https://example.com/1"}}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

type cancelingFetcher struct{}

func (cancelingFetcher) Fetch(ctx context.Context, url string) (*article.Article, error) {
	<-ctx.Done()
	return nil, &article.FetchError{URL: url, Err: ctx.Err()}
}

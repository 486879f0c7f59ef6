// Package article は記事ページをダウンロードして本文を取り出す
package article

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/newsdigest/newsum/internal/debug"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultMaxBytes  = 5 << 20
	defaultUserAgent = "newsum/1.0"
)

// Article はダウンロードした記事
type Article struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Fetcher は記事をダウンロードする
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// Option は Fetcher のオプション
type Option func(*Fetcher)

// WithTimeout はダウンロードのタイムアウトを設定する
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent はUser-Agentヘッダーを設定する
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBytes は読み込むレスポンスボディの上限を設定する
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithHTTPClient はHTTPクライアントを差し替える
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// NewFetcher は新しい Fetcher を作成する
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		maxBytes:   defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch は記事をダウンロードし、タイトルと本文を返す
// 失敗した場合は *FetchError を返す
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &FetchError{URL: rawURL, Err: ErrInvalidURL}
	}
	link := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, &FetchError{URL: link, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: link, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	debug.Since("article downloaded", start, "url", link, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: link, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body := io.LimitReader(resp.Body, f.maxBytes)
	article := &Article{URL: link}

	switch contentKind(resp.Header.Get("Content-Type")) {
	case "html":
		extracted, err := Extract(body)
		if err != nil {
			return nil, &FetchError{URL: link, StatusCode: resp.StatusCode, Err: err}
		}
		article.Title = extracted.Title
		article.Text = extracted.Text()
	case "text":
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, &FetchError{URL: link, StatusCode: resp.StatusCode, Err: err}
		}
		article.Text = strings.TrimSpace(string(data))
	default:
		return nil, &FetchError{URL: link, StatusCode: resp.StatusCode, Err: ErrUnsupportedContent}
	}

	if strings.TrimSpace(article.Text) == "" {
		return nil, &FetchError{URL: link, StatusCode: resp.StatusCode, Err: ErrNoContent}
	}
	return article, nil
}

// contentKind は Content-Type を html / text / それ以外 に分類する
// Content-Type がない場合は HTML とみなす
func contentKind(contentType string) string {
	if contentType == "" {
		return "html"
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "html"
	}
	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return "html"
	case strings.HasPrefix(mediaType, "text/"):
		return "text"
	default:
		return ""
	}
}

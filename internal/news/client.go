package news

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/newsdigest/newsum/internal/debug"
)

const (
	// DefaultBaseURL は NewsAPI v2 のエンドポイント
	DefaultBaseURL  = "https://newsapi.org/v2"
	defaultLanguage = "en"
	defaultPageSize = 20
	maxPageSize     = 100
)

// DefaultSources は検索対象とするニュースソース
var DefaultSources = []string{
	"bbc-news",
	"cnn",
	"bbc-sport",
	"google-news",
	"reuters",
	"the-new-york-times",
	"the-guardian",
	"wired",
}

// Client は NewsAPI クライアント
type Client struct {
	apiKey     string
	baseURL    string
	sources    []string
	language   string
	pageSize   int
	httpClient *http.Client
}

// ClientOption はクライアントオプション
type ClientOption func(*Client)

// WithBaseURL はAPIのベースURLを設定する
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithSources は検索対象のソースを設定する
func WithSources(sources []string) ClientOption {
	return func(c *Client) {
		if len(sources) > 0 {
			c.sources = sources
		}
	}
}

// WithLanguage は記事の言語を設定する
func WithLanguage(language string) ClientOption {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// WithPageSize は1回の検索で取得する件数を設定する
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = min(n, maxPageSize)
		}
	}
}

// WithHTTPTimeout はHTTPタイムアウトを設定する
func WithHTTPTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMaxRetries は429時のリトライ回数を設定する
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		if rt, ok := c.httpClient.Transport.(*RetryTransport); ok && n >= 0 {
			rt.MaxRetries = n
		}
	}
}

// WithTransport は下位のRoundTripperを差し替える（テスト用）
func WithTransport(base http.RoundTripper) ClientOption {
	return func(c *Client) {
		if rt, ok := c.httpClient.Transport.(*RetryTransport); ok {
			rt.Base = base
		}
	}
}

// NewClient は新しいクライアントを作成する
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		sources:  DefaultSources,
		language: defaultLanguage,
		pageSize: defaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &RetryTransport{
				Base:       http.DefaultTransport,
				MaxRetries: 3,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name はソース名を返す
func (c *Client) Name() string {
	return "newsapi"
}

type everythingResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Headlines は /everything エンドポイントで記事を検索する
// query が空の場合は対象ソースの最新記事を返す
func (c *Client) Headlines(ctx context.Context, query string) ([]Headline, error) {
	q := url.Values{}
	q.Set("sources", strings.Join(c.sources, ","))
	q.Set("language", c.language)
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	if query = strings.TrimSpace(query); query != "" {
		q.Set("q", query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request news api")
	}
	defer func() { _ = resp.Body.Close() }()
	debug.Since("news api request", start, "query", query, "status", resp.StatusCode)

	var body everythingResponse
	if err := DecodeResponse(resp, &body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, &APIError{StatusCode: resp.StatusCode, Code: body.Code, Message: body.Message}
	}

	headlines := make([]Headline, 0, len(body.Articles))
	for _, a := range body.Articles {
		if a.URL == "" {
			continue
		}
		h := Headline{
			Title:       strings.TrimSpace(a.Title),
			URL:         a.URL,
			Thumbnail:   a.URLToImage,
			Source:      a.Source.Name,
			Description: strings.TrimSpace(a.Description),
		}
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}

	if len(headlines) == 0 {
		return nil, errors.Wrapf(ErrNoArticles, "query %q", query)
	}
	return headlines, nil
}

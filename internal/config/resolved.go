package config

import (
	"os"
	"time"
)

// ResolvedConfig は全レイヤーをマージし、デフォルト適用後の設定
// jubakoのmaterializationはJSONを使用するため、jsonタグが必須
// jubako tagでYAMLパスからマッピング（ネスト構造を解決）
type ResolvedConfig struct {
	// 要約設定
	Summary ResolvedSummary `json:"summary"`

	// ニュース取得設定
	News ResolvedNews `json:"news"`

	// 記事ダウンロード設定
	Article ResolvedArticle `json:"article"`

	// HTTPクライアント設定
	HTTP ResolvedHTTP `json:"http"`

	// キャッシュ設定
	Cache ResolvedCache `json:"cache"`

	// サーバー設定
	Server ResolvedServer `json:"server"`

	// 表示設定
	Display ResolvedDisplay `json:"display"`
}

// ResolvedSummary はマージ済みの要約設定
// env: ディレクティブで環境変数からの自動マッピングを定義
type ResolvedSummary struct {
	// frequency または lexrank
	Algorithm string `json:"algorithm" jubako:"/summary/algorithm,env:SUMMARY_ALGORITHM"`
	// これ未満の単語数のテキストはそのまま返す
	MinWords int `json:"min_words" jubako:"/summary/min_words,env:SUMMARY_MIN_WORDS"`
	// 選択する文の割合
	Ratio float64 `json:"ratio" jubako:"/summary/ratio,env:SUMMARY_RATIO"`
	// document（原文順）または score（スコア順）
	Order string `json:"order" jubako:"/summary/order,env:SUMMARY_ORDER"`
	// 追加のストップワード
	Stopwords []string `json:"stopwords" jubako:"/summary/stopwords,env:SUMMARY_STOPWORDS"`
}

// ResolvedNews はマージ済みのニュース取得設定
// APIキーは sensitive タグによりクレデンシャルレイヤーにのみ書き込み可能
type ResolvedNews struct {
	// newsapi, feeds, all のいずれか
	Provider string   `json:"provider" jubako:"/news/provider,env:NEWS_PROVIDER"`
	BaseURL  string   `json:"base_url" jubako:"/news/base_url,env:NEWS_BASE_URL"`
	APIKey   string   `json:"api_key" jubako:"/news/api_key,env:NEWS_API_KEY,sensitive"`
	Sources  []string `json:"sources" jubako:"/news/sources,env:NEWS_SOURCES"`
	Language string   `json:"language" jubako:"/news/language,env:NEWS_LANGUAGE"`
	PageSize int      `json:"page_size" jubako:"/news/page_size,env:NEWS_PAGE_SIZE"`
	Feeds    []string `json:"feeds" jubako:"/news/feeds,env:NEWS_FEEDS"`
}

// ResolvedArticle はマージ済みの記事ダウンロード設定
type ResolvedArticle struct {
	Timeout     int    `json:"timeout" jubako:"/article/timeout,env:ARTICLE_TIMEOUT"`
	UserAgent   string `json:"user_agent" jubako:"/article/user_agent,env:ARTICLE_USER_AGENT"`
	MaxBytes    int64  `json:"max_bytes" jubako:"/article/max_bytes,env:ARTICLE_MAX_BYTES"`
	Concurrency int    `json:"concurrency" jubako:"/article/concurrency,env:ARTICLE_CONCURRENCY"`
}

// TimeoutDuration はタイムアウトをtime.Durationで返す
func (a *ResolvedArticle) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// ResolvedHTTP はマージ済みのHTTPクライアント設定
type ResolvedHTTP struct {
	Timeout    int `json:"timeout" jubako:"/http/timeout,env:HTTP_TIMEOUT"`
	MaxRetries int `json:"max_retries" jubako:"/http/max_retries,env:HTTP_MAX_RETRIES"`
}

// TimeoutDuration はタイムアウトをtime.Durationで返す
func (h *ResolvedHTTP) TimeoutDuration() time.Duration {
	return time.Duration(h.Timeout) * time.Second
}

// ResolvedCache はマージ済みのキャッシュ設定
type ResolvedCache struct {
	Enabled bool   `json:"enabled" jubako:"/cache/enabled,env:CACHE_ENABLED"`
	Dir     string `json:"dir" jubako:"/cache/dir,env:CACHE_DIR"`
	TTL     int    `json:"ttl" jubako:"/cache/ttl,env:CACHE_TTL"`
	// インメモリLRUの最大エントリ数（0は無制限）
	MemorySize int `json:"memory_size" jubako:"/cache/memory_size,env:CACHE_MEMORY_SIZE"`
}

// GetCacheDir returns the cache directory.
// If Dir is not specified, it returns the default cache directory.
func (c *ResolvedCache) GetCacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	return defaultCacheDir()
}

// TTLDuration はTTLをtime.Durationで返す
func (c *ResolvedCache) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// ResolvedServer はマージ済みのサーバー設定
// jubako tagでYAMLのネスト構造からフラットな構造へマッピング
type ResolvedServer struct {
	Host         string `json:"host" jubako:"/server/host,env:SERVER_HOST"`
	Port         int    `json:"port" jubako:"/server/port,env:SERVER_PORT"`
	MaxBodyBytes int64  `json:"max_body_bytes" jubako:"/server/max_body_bytes,env:SERVER_MAX_BODY_BYTES"`

	// HTTP設定 (server.http.*)
	HTTPReadTimeout  int `json:"http_read_timeout" jubako:"/server/http/read_timeout,env:SERVER_HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout int `json:"http_write_timeout" jubako:"/server/http/write_timeout,env:SERVER_HTTP_WRITE_TIMEOUT"`
	HTTPIdleTimeout  int `json:"http_idle_timeout" jubako:"/server/http/idle_timeout,env:SERVER_HTTP_IDLE_TIMEOUT"`

	// レートリミット (server.rate_limit.*)
	RateLimitEnabled           bool `json:"rate_limit_enabled" jubako:"/server/rate_limit/enabled,env:RATE_LIMIT_ENABLED"`
	RateLimitRequestsPerMinute int  `json:"rate_limit_requests_per_minute" jubako:"/server/rate_limit/requests_per_minute,env:RATE_LIMIT_REQUESTS_PER_MINUTE"`
	RateLimitBurst             int  `json:"rate_limit_burst" jubako:"/server/rate_limit/burst,env:RATE_LIMIT_BURST"`
	RateLimitCleanupInterval   int  `json:"rate_limit_cleanup_interval" jubako:"/server/rate_limit/cleanup_interval"`
	RateLimitEntryTTL          int  `json:"rate_limit_entry_ttl" jubako:"/server/rate_limit/entry_ttl"`
}

// ResolvedDisplay はマージ済みの表示設定
type ResolvedDisplay struct {
	Output         string `json:"output" jubako:"/display/output,env:DISPLAY_OUTPUT"`
	Color          string `json:"color" jubako:"/display/color,env:DISPLAY_COLOR"`
	Timezone       string `json:"timezone" jubako:"/display/timezone,env:DISPLAY_TIMEZONE"`
	DateTimeFormat string `json:"datetime_format" jubako:"/display/datetime_format,env:DISPLAY_DATETIME_FORMAT"`
	TitleMaxWidth  int    `json:"title_max_width" jubako:"/display/title_max_width,env:DISPLAY_TITLE_MAX_WIDTH"`
}

// Location はタイムゾーン設定を解決する。不正な値はローカルタイムにフォールバックする
func (d *ResolvedDisplay) Location() *time.Location {
	if d.Timezone == "" || d.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// envShortcuts は環境変数のショートカットマッピング（先に書かれたものが優先）
// NEWS_API_KEY などの一般的な名前を NEWSUM_ 付きの完全形式に展開する
var envShortcuts = [][2]string{
	{"NEWS_API_KEY", "NEWSUM_NEWS_API_KEY"},
	{"NEWSAPI_KEY", "NEWSUM_NEWS_API_KEY"},
	{"NEWSUM_OUTPUT", "NEWSUM_DISPLAY_OUTPUT"},
	{"NEWSUM_COLOR", "NEWSUM_DISPLAY_COLOR"},
	{"NEWSUM_PORT", "NEWSUM_SERVER_PORT"},
}

// expandEnvShortcuts は環境変数のショートカットを展開した環境変数リストを返す
// 完全形式が既に設定されている場合は、完全形式を優先する
func expandEnvShortcuts() []string {
	envs := os.Environ()
	expanded := make(map[string]bool)

	for _, pair := range envShortcuts {
		shortKey, fullKey := pair[0], pair[1]
		if value := os.Getenv(shortKey); value != "" {
			if os.Getenv(fullKey) == "" && !expanded[fullKey] {
				envs = append(envs, fullKey+"="+value)
				expanded[fullKey] = true
			}
		}
	}

	return envs
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/yacchi/lambda-http-adaptor"
	_ "github.com/yacchi/lambda-http-adaptor/all"

	"github.com/newsdigest/newsum"
	newsumConfig "github.com/newsdigest/newsum/internal/config"
)

func main() {
	// CloudWatch 向けの構造化ログ
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	handler, err := buildHandler()
	if err != nil {
		slog.Error("failed to build handler", "error", err)
		os.Exit(1)
	}
	defer func() { _ = newsum.Close() }()

	slog.Info("starting lambda handler")
	if err := adaptor.ListenAndServe("", handler); err != nil {
		slog.Error("handler error", "error", err)
		os.Exit(1)
	}
}

// ParameterStoreConfig は Parameter Store から読み込む設定の構造
type ParameterStoreConfig struct {
	NewsAPIKey string   `json:"newsApiKey"`
	Provider   string   `json:"provider,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	Feeds      []string `json:"feeds,omitempty"`
	Algorithm  string   `json:"algorithm,omitempty"`
	RateLimit  *struct {
		RequestsPerMinute int `json:"requestsPerMinute"`
	} `json:"rateLimit,omitempty"`
}

func buildHandler() (http.Handler, error) {
	ctx := context.Background()

	// Parameter Store からの読み込みを試行
	if paramName := os.Getenv("NEWSUM_CONFIG_PARAMETER"); paramName != "" {
		if err := loadFromParameterStore(ctx, paramName); err != nil {
			return nil, fmt.Errorf("failed to load config from parameter store: %w", err)
		}
		slog.Info("loaded config from parameter store", "parameter", paramName)
	}

	// Lambda ではファイルキャッシュを /tmp に置く
	if os.Getenv("NEWSUM_CACHE_DIR") == "" {
		_ = os.Setenv("NEWSUM_CACHE_DIR", "/tmp/newsum")
	}

	// 設定をロード（環境変数から）
	cfg, err := newsum.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 設定をログ出力（センシティブ値はマスクされる）
	logConfig(cfg)

	return newsum.Handler(cfg)
}

// loadFromParameterStore は Parameter Store から設定を読み込み、環境変数に設定する
func loadFromParameterStore(ctx context.Context, paramName string) error {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg)

	output, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &paramName,
		WithDecryption: boolPtr(true),
	})
	if err != nil {
		return fmt.Errorf("failed to get parameter: %w", err)
	}

	if output.Parameter == nil || output.Parameter.Value == nil {
		return fmt.Errorf("parameter value is empty")
	}

	var psc ParameterStoreConfig
	if err := json.Unmarshal([]byte(*output.Parameter.Value), &psc); err != nil {
		return fmt.Errorf("failed to parse parameter JSON: %w", err)
	}

	// 環境変数に設定
	setEnvIfNotEmpty("NEWSUM_NEWS_API_KEY", psc.NewsAPIKey)
	setEnvIfNotEmpty("NEWSUM_NEWS_PROVIDER", psc.Provider)
	setEnvIfNotEmpty("NEWSUM_NEWS_SOURCES", strings.Join(psc.Sources, ","))
	setEnvIfNotEmpty("NEWSUM_NEWS_FEEDS", strings.Join(psc.Feeds, ","))
	setEnvIfNotEmpty("NEWSUM_SUMMARY_ALGORITHM", psc.Algorithm)

	if psc.RateLimit != nil {
		_ = os.Setenv("NEWSUM_RATE_LIMIT_ENABLED", "true")
		_ = os.Setenv("NEWSUM_RATE_LIMIT_REQUESTS_PER_MINUTE", fmt.Sprint(psc.RateLimit.RequestsPerMinute))
	}

	return nil
}

func setEnvIfNotEmpty(key, value string) {
	if value != "" {
		_ = os.Setenv(key, value)
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// logConfig は設定をINFOログに出力する（センシティブ値はマスクされる）
// デフォルトレイヤーの設定は除外し、実際に設定された値のみ出力する
func logConfig(cfg *newsum.Config) {
	configMap := make(map[string]any)

	cfg.Walk(func(e newsumConfig.WalkEntry) bool {
		if e.Layer == newsumConfig.LayerDefaults {
			return true
		}
		configMap[e.Path] = map[string]any{
			"value": e.Value,
			"layer": e.Layer,
		}
		return true
	})

	slog.Info("configuration loaded", "config", configMap)
}

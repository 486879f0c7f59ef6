package config

import (
	_ "embed"
)

// レイヤー名定数
const (
	LayerDefaults    = "defaults"
	LayerUser        = "user"
	LayerCredentials = "credentials"
	LayerProject     = "project"
	LayerEnv         = "env"
	LayerArgs        = "args"
)

// 設定パス定数（JSON Pointer形式）
const (
	PathNewsAPIKey       = "/news/api_key"
	PathNewsProvider     = "/news/provider"
	PathSummaryAlgorithm = "/summary/algorithm"
	PathSummaryMinWords  = "/summary/min_words"
	PathSummaryRatio     = "/summary/ratio"
	PathSummaryOrder     = "/summary/order"
	PathDisplayOutput    = "/display/output"
	PathServerHost       = "/server/host"
	PathServerPort       = "/server/port"
)

// EnvPrefix は環境変数レイヤーのプレフィックス
const EnvPrefix = "NEWSUM_"

// ProjectConfigFiles はプロジェクト設定ファイルの候補（優先順）
var ProjectConfigFiles = []string{".newsum.yaml", ".newsum.yml"}

//go:embed defaults.yaml
var defaultConfigYAML []byte

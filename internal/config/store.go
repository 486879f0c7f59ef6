package config

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/yacchi/jubako"
	"github.com/yacchi/jubako/format/yaml"
	"github.com/yacchi/jubako/layer"
	"github.com/yacchi/jubako/layer/env"
	"github.com/yacchi/jubako/layer/mapdata"
	"github.com/yacchi/jubako/source/bytes"
	jfs "github.com/yacchi/jubako/source/fs"
)

// Store は設定のレイヤー管理を行うjubakoベースの実装
type Store struct {
	mu sync.RWMutex

	// メインの設定ストア
	store *jubako.Store[ResolvedConfig]

	// プロジェクト設定ファイルのパス
	projectConfigPath string

	// クレデンシャルファイルのパス
	credentialsPath string
}

// SensitiveMaskString はセンシティブフィールドのマスク文字列
const SensitiveMaskString = "********"

// DotEnvFile はプロセス環境に読み込む .env ファイル名
const DotEnvFile = ".env"

// newConfigStore は新しいStoreを作成する
// すべてのレイヤーを静的に追加する。ファイルが存在しない場合は空として扱う。
func newConfigStore() (*Store, error) {
	store := jubako.New[ResolvedConfig](
		jubako.WithSensitiveMaskString(SensitiveMaskString),
	)

	// Layer 1: Defaults (embedded YAML)
	if err := store.Add(
		layer.New(
			LayerDefaults,
			bytes.FromString(string(defaultConfigYAML)),
			yaml.New(),
		),
		jubako.WithReadOnly(),
		jubako.WithNoWatch(),
	); err != nil {
		return nil, err
	}

	// Layer 2: User config (~/.config/newsum/config.yaml)
	userConfigPath, err := configPath()
	if err != nil {
		return nil, err
	}
	if err := store.Add(
		layer.New(
			LayerUser,
			jfs.New(userConfigPath),
			yaml.New(),
		),
		jubako.WithOptional(),
	); err != nil {
		return nil, err
	}

	// Layer 3: Credentials (~/.config/newsum/credentials.yaml)
	// WithSensitive() により、センシティブフィールド（APIキー）のみ書き込み可能
	credentialsPath, err := credentialsPath()
	if err != nil {
		return nil, err
	}
	if err := store.Add(
		layer.New(
			LayerCredentials,
			jfs.New(credentialsPath, jfs.WithFileMode(0600)),
			yaml.New(),
		),
		jubako.WithSensitive(),
		jubako.WithOptional(),
	); err != nil {
		return nil, err
	}

	// Layer 4: Project config (.newsum.yaml)
	// 見つかったらそのパス、なければカレントディレクトリの .newsum.yaml をデフォルト
	projectConfigPath, _ := findProjectConfigPath()
	if projectConfigPath == "" {
		projectConfigPath = ProjectConfigFiles[0]
	}
	if err := store.Add(
		layer.New(
			LayerProject,
			jfs.New(projectConfigPath),
			yaml.New(),
		),
		jubako.WithOptional(),
	); err != nil {
		return nil, err
	}

	// Layer 5: Environment variables
	// WithEnvironFunc でショートカット環境変数を展開してから供給
	if err := store.Add(
		env.NewWithAutoSchema(LayerEnv, EnvPrefix,
			env.WithEnvironFunc(expandEnvShortcuts),
		),
		jubako.WithReadOnly(),
	); err != nil {
		return nil, err
	}

	// Layer 6: Command-line flags
	// 静的に空のレイヤーを追加。SetFlagsLayer で値を設定
	if err := store.Add(
		mapdata.New(LayerArgs, nil),
	); err != nil {
		return nil, err
	}

	return &Store{
		store:             store,
		projectConfigPath: projectConfigPath,
		credentialsPath:   credentialsPath,
	}, nil
}

// loadDotEnv はカレントディレクトリの .env を環境変数に読み込む
// 既に設定されている環境変数は上書きしない
func loadDotEnv() error {
	if err := godotenv.Load(DotEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// LoadAll は全レイヤーを読み込んでConfigを構築する
func (s *Store) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Load(ctx)
}

// SetFlagsLayer はコマンドラインフラグからのオーバーライドを設定する
func (s *Store) SetFlagsLayer(options []jubako.SetOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(LayerArgs, options...)
}

// SetFlag はコマンド固有のフラグ値を Args レイヤーに設定する
// path はJSON Pointer形式（例: /summary/ratio）
func (s *Store) SetFlag(path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SetTo(LayerArgs, path, value)
}

// Reload は設定を再読み込みする
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Reload(ctx)
}

// ====================
// アクセサ（読み取り）
// ====================

// Resolved は解決済み設定を返す
func (s *Store) Resolved() *ResolvedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resolved := s.store.Get()
	return &resolved
}

// Summary は要約設定を取得する
func (s *Store) Summary() *ResolvedSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.Summary
}

// News はニュース取得設定を取得する
func (s *Store) News() *ResolvedNews {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.News
}

// Article は記事ダウンロード設定を取得する
func (s *Store) Article() *ResolvedArticle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.Article
}

// HTTP はHTTPクライアント設定を取得する
func (s *Store) HTTP() *ResolvedHTTP {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.HTTP
}

// Cache はキャッシュ設定を取得する
func (s *Store) Cache() *ResolvedCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.Cache
}

// Server はサーバー設定を取得する
func (s *Store) Server() *ResolvedServer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.Server
}

// Display は表示設定を取得する
func (s *Store) Display() *ResolvedDisplay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved.Display
}

// GetProjectConfigPath はプロジェクト設定ファイルのパスを返す
func (s *Store) GetProjectConfigPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectConfigPath
}

// GetUserConfigPath はユーザー設定ファイルのパスを返す
func (s *Store) GetUserConfigPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if info := s.store.GetLayerInfo(LayerUser); info != nil {
		return info.Path()
	}
	return ""
}

// GetCredentialsPath はクレデンシャルファイルのパスを返す
func (s *Store) GetCredentialsPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentialsPath
}

// ====================
// セッター（書き込み）
// ====================

// SetAPIKey はNewsAPIのキーをクレデンシャルレイヤーに設定する
func (s *Store) SetAPIKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.SetTo(LayerCredentials, PathNewsAPIKey, key)
}

// DeleteAPIKey はクレデンシャルレイヤーからAPIキーを削除する
func (s *Store) DeleteAPIKey() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.GetLayer(LayerCredentials) == nil {
		return nil
	}
	return s.store.DeleteFrom(LayerCredentials, PathNewsAPIKey)
}

// Set はドット区切りのキーで値を設定する（ユーザーレイヤー）
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.SetTo(LayerUser, DotToPointer(key), value)
}

// SetToLayer は指定レイヤーに値を設定する（CLIコマンド用）
func (s *Store) SetToLayer(layerName, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.SetTo(layer.Name(layerName), DotToPointer(key), value)
}

// Save は更新があったレイヤーを保存する
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Save(ctx)
}

// ====================
// CLIコマンド用メソッド
// ====================

// Get は指定キーの値を取得する（マスクなし）
func (s *Store) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rv := s.store.GetAt(DotToPointer(key))
	if rv.Exists {
		return rv.Value
	}
	return nil
}

// IsSensitive は指定キーがセンシティブフィールドかどうかを返す
func IsSensitive(key string) bool {
	return DotToPointer(key) == PathNewsAPIKey
}

// WalkEntry は Walk で返されるエントリ情報
type WalkEntry struct {
	Path         string // ドット区切りのパス
	Value        any    // マスク済みの値
	Layer        string // 値の出所となるレイヤー名
	DefaultValue any    // デフォルト値（存在しない場合は nil）
}

// WalkFunc は Walk で使用するコールバック関数の型
// fn が false を返すとイテレーションを停止する
type WalkFunc func(entry WalkEntry) bool

// Walk は全設定パスをイテレートする
// センシティブフィールドはマスクされた値が渡される
func (s *Store) Walk(fn WalkFunc) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.store.Walk(func(ctx jubako.WalkContext) bool {
		rv := ctx.Value() // マスク済み
		if !rv.Exists {
			return true
		}
		// /news/api_key → news.api_key
		key := PointerToDot(ctx.Path)
		layerName := ""
		if rv.Layer != nil {
			layerName = string(rv.Layer.Name())
		}

		var defaultValue any
		for _, v := range ctx.AllValues() {
			if v.Layer != nil && string(v.Layer.Name()) == LayerDefaults {
				defaultValue = v.Value
				break
			}
		}

		return fn(WalkEntry{
			Path:         key,
			Value:        rv.Value,
			Layer:        layerName,
			DefaultValue: defaultValue,
		})
	})
}

// ====================
// グローバルストア管理
// ====================

var (
	globalStore   *Store
	globalStoreMu sync.RWMutex
)

// Load はグローバル設定ストアを初期化してロードする
// すでにロード済みの場合は既存のストアを返す
func Load(ctx context.Context) (*Store, error) {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()

	if globalStore != nil {
		return globalStore, nil
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	store, err := newConfigStore()
	if err != nil {
		return nil, err
	}

	if err := store.LoadAll(ctx); err != nil {
		return nil, err
	}

	globalStore = store
	return globalStore, nil
}

// ResetConfig はグローバル設定ストアをリセットする（テスト用）
func ResetConfig() {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()
	globalStore = nil
}

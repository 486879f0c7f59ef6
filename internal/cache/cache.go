// Package cache はニュース一覧や記事本文のキャッシュを提供する
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// Cache はキャッシュインターフェース
type Cache interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any, ttl time.Duration) error
	Clear() error
}

// FileCache はファイルベースのキャッシュ実装
type FileCache struct {
	dir string
}

type cacheItem struct {
	ExpiresAt time.Time `json:"expires_at"`
	Data      any       `json:"data"`
}

// 期限チェック時はエンベロープだけ読み、Data は呼び出し元の型でデコードする
type rawCacheItem struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Data      json.RawMessage `json:"data"`
}

// NewFileCache は新しいFileCacheを作成する
// dirが空の場合はユーザーのキャッシュディレクトリを使用する
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, errors.Wrap(err, "get user cache dir")
		}
		dir = filepath.Join(userCacheDir, "newsum")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(err, "create cache dir")
	}

	return &FileCache{dir: dir}, nil
}

// Dir はキャッシュディレクトリを返す
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) getFilePath(key string) string {
	hash := sha256.Sum256([]byte(key))
	filename := hex.EncodeToString(hash[:]) + ".json"
	return filepath.Join(c.dir, filename)
}

// Get はキャッシュを取得する
// キャッシュが存在しない、または期限切れの場合は false と nil を返す
func (c *FileCache) Get(key string, v any) (bool, error) {
	path := c.getFilePath(key)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	var item rawCacheItem
	if err := json.NewDecoder(f).Decode(&item); err != nil {
		// デコードエラーならキャッシュ無効扱い
		return false, nil
	}

	if time.Now().After(item.ExpiresAt) {
		_ = os.Remove(path)
		return false, nil
	}

	if err := json.Unmarshal(item.Data, v); err != nil {
		return false, errors.Wrap(err, "unmarshal cache data")
	}

	return true, nil
}

// Set はキャッシュを保存する
// 一時ファイルに書いてからリネームする
func (c *FileCache) Set(key string, v any, ttl time.Duration) error {
	path := c.getFilePath(key)

	data, err := json.Marshal(cacheItem{
		ExpiresAt: time.Now().Add(ttl),
		Data:      v,
	})
	if err != nil {
		return errors.Wrap(err, "marshal cache data")
	}

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Clear はキャッシュディレクトリを削除する
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Cleanup は期限切れのキャッシュファイルを削除する
// maxAge が正の場合、更新時刻が maxAge より古いファイルも削除する
func (c *FileCache) Cleanup(ctx context.Context, maxAge time.Duration) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	now := time.Now()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())

		if maxAge > 0 {
			if info, err := entry.Info(); err == nil && now.Sub(info.ModTime()) > maxAge {
				_ = os.Remove(path)
				continue
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var item rawCacheItem
		if err := json.Unmarshal(data, &item); err != nil || now.After(item.ExpiresAt) {
			_ = os.Remove(path)
		}
	}
	return nil
}

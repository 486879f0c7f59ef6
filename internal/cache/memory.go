package cache

import (
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	expiresAt time.Time
	data      []byte
}

// MemoryCache はプロセス内のキャッシュ
// size が正なら LRU で件数を制限し、0 なら件数を制限しない
// TTL は Set ごとに指定するため、期限はエントリ側で持つ
// 値は JSON で保持し、FileCache と同じくコピーを返す
type MemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

// NewMemoryCache は新しいMemoryCacheを作成する
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size < 0 {
		return nil, errors.Errorf("invalid memory cache size: %d", size)
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, 0),
		now: time.Now,
	}, nil
}

// Get はキャッシュを取得する
func (c *MemoryCache) Get(key string, v any) (bool, error) {
	e, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	if c.now().After(e.expiresAt) {
		c.lru.Remove(key)
		return false, nil
	}
	if err := json.Unmarshal(e.data, v); err != nil {
		return false, errors.Wrap(err, "unmarshal cache data")
	}
	return true, nil
}

// Set はキャッシュを保存する
func (c *MemoryCache) Set(key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal cache data")
	}
	c.lru.Add(key, memoryEntry{expiresAt: c.now().Add(ttl), data: data})
	return nil
}

// Clear は全エントリを削除する
func (c *MemoryCache) Clear() error {
	c.lru.Purge()
	return nil
}

// Len は保持しているエントリ数を返す（期限切れを含む）
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

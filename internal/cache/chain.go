package cache

import (
	"errors"
	"time"
)

// Chain は複数のキャッシュを順に参照する
// 後段でヒットした場合は前段に書き戻す
type Chain struct {
	caches []Cache
	// 書き戻し時のTTL
	backfillTTL time.Duration
}

// NewChain は Chain を作成する。nil のキャッシュは無視する
func NewChain(backfillTTL time.Duration, caches ...Cache) *Chain {
	c := &Chain{backfillTTL: backfillTTL}
	for _, cc := range caches {
		if cc != nil {
			c.caches = append(c.caches, cc)
		}
	}
	return c
}

// Get は前段から順にキャッシュを探す
func (c *Chain) Get(key string, v any) (bool, error) {
	for i, cc := range c.caches {
		ok, err := cc.Get(key, v)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		for j := 0; j < i; j++ {
			_ = c.caches[j].Set(key, v, c.backfillTTL)
		}
		return true, nil
	}
	return false, nil
}

// Set は全てのキャッシュに保存する
func (c *Chain) Set(key string, v any, ttl time.Duration) error {
	var errs []error
	for _, cc := range c.caches {
		if err := cc.Set(key, v, ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear は全てのキャッシュを削除する
func (c *Chain) Clear() error {
	var errs []error
	for _, cc := range c.caches {
		if err := cc.Clear(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len は連結しているキャッシュの数を返す
func (c *Chain) Len() int {
	return len(c.caches)
}

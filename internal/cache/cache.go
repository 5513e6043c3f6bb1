package cache

import (
	"errors"
	"time"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

var ErrMiss = errors.New("cache miss")

type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Del(key string) bool
	Clear()
}

var _ Cache = (*FreeCache)(nil)

// FreeCache is an in-process byte cache with per-entry expiry.
type FreeCache struct {
	mainCache *freecache.Cache
}

// NewFreeCache allocates a cache of sizeMB megabytes (freecache enforces a 512KB minimum).
func NewFreeCache(sizeMB int) *FreeCache {
	return &FreeCache{
		mainCache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (c *FreeCache) Get(key string) ([]byte, error) {
	value, err := c.mainCache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return value, nil
}

func (c *FreeCache) Set(key string, value []byte, ttl time.Duration) error {
	return c.mainCache.Set([]byte(key), value, int(ttl.Seconds()))
}

func (c *FreeCache) Del(key string) bool {
	return c.mainCache.Del([]byte(key))
}

func (c *FreeCache) Clear() {
	c.mainCache.Clear()
}

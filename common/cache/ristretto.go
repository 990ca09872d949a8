package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache 本地 TTL 缓存，按值类型区分，底层是 ristretto
// ristretto 的写入是异步的，Set 之后立刻 Get 可能未命中，需要时调用 Wait
type Cache[V any] struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// New 创建缓存
// maxItems: 最多缓存多少个条目，每个条目成本记为 1
// ttl: 默认过期时间，0 表示不过期
func New[V any](maxItems int64, ttl time.Duration) (*Cache[V], error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", maxItems)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxItems * 10, // 官方建议计数器为条目数的 10 倍
		MaxCost:     maxItems,
		BufferItems: 64,
		// 成本按条目计，不叠加 ristretto 内部的元数据开销
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &Cache[V]{cache: c, ttl: ttl}, nil
}

// Set 使用默认 TTL
func (c *Cache[V]) Set(key string, value V) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, 1, ttl)
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	value, ok := c.cache.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *Cache[V]) Delete(key string) {
	c.cache.Del(key)
}

// Wait 等待缓冲区中的写入落地
func (c *Cache[V]) Wait() {
	c.cache.Wait()
}

func (c *Cache[V]) Close() {
	c.cache.Close()
}

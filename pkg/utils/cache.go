package utils

import (
	"sync"
	"time"
)

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// TTLCache 带过期时间的字符串缓存（并发安全）
// 用途：AI 描述按候选 ID 缓存，避免重复请求后端
type TTLCache struct {
	items sync.Map
	ttl   time.Duration
}

// NewTTLCache 创建缓存，ttl 为条目存活时长
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{ttl: ttl}
}

// Set 设置缓存
func (c *TTLCache) Set(key, value string) {
	c.items.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(c.ttl).Unix(),
	})
}

// Get 获取缓存并验证是否过期
func (c *TTLCache) Get(key string) (string, bool) {
	val, ok := c.items.Load(key)
	if !ok {
		return "", false
	}

	item := val.(cacheItem)

	// 懒删除
	if time.Now().Unix() > item.expiration {
		c.items.Delete(key)
		return "", false
	}

	return item.value, true
}

// Delete 删除缓存
func (c *TTLCache) Delete(key string) {
	c.items.Delete(key)
}

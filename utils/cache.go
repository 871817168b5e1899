package utils

import (
	"sync"
	"time"
)

// TTLCache 有界内存缓存
// 条目带过期时间，容量有上限，满了先清过期的、不够再挤掉最先过期的
// 用于缩略图地址这类可重算的结果，不做持久化
type TTLCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// NewTTLCache 创建缓存
func NewTTLCache(ttl time.Duration, maxEntries int) *TTLCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &TTLCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get 读取缓存，过期条目视为不存在并顺手删除
func (c *TTLCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

// Set 写入缓存，超出容量时先腾位置
func (c *TTLCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Len 当前条目数
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked 先删过期条目，一个都没过期就挤掉最先过期的那个
func (c *TTLCache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey = key
			oldest = entry.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}

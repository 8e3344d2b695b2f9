package graph

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"SearchQL/internal/logger"
)

const (
	aliasCacheTTL       = 7 * 24 * time.Hour
	aliasCacheSweepFreq = time.Hour
)

type aliasCacheEntry struct {
	aliasMap *AliasMap
	lastUsed time.Time
}

type aliasMapCache struct {
	mu         sync.Mutex
	items      map[string]*aliasCacheEntry
	lastSweep  time.Time
	totalBytes int64
	maxBytes   int64
	group      singleflight.Group
}

var globalAliasCache = &aliasMapCache{
	items: make(map[string]*aliasCacheEntry),
}

func SetAliasCacheMaxBytes(maxBytes int64) {
	globalAliasCache.mu.Lock()
	defer globalAliasCache.mu.Unlock()
	globalAliasCache.maxBytes = maxBytes
}

// AliasMapFor возвращает карту алиасов модели из in-process кэша, строя её
// через singleflight: конкурентные первые обращения к одной модели
// выполняют построение ровно один раз.
func AliasMapFor(m *Model) (*AliasMap, error) {
	now := time.Now()
	if cached, ok := globalAliasCache.get(m.Name, now); ok {
		return cached, nil
	}
	v, err, _ := globalAliasCache.group.Do(m.Name, func() (any, error) {
		if cached, ok := globalAliasCache.get(m.Name, time.Now()); ok {
			return cached, nil
		}
		aliasMap, err := BuildAliasMap(m)
		if err != nil {
			return nil, err
		}
		globalAliasCache.set(m.Name, aliasMap, time.Now())
		return aliasMap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*AliasMap), nil
}

func (c *aliasMapCache) get(key string, now time.Time) (*AliasMap, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maybeSweepLocked(now)
	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if now.Sub(entry.lastUsed) > aliasCacheTTL {
		c.totalBytes -= estimateAliasMapBytes(entry.aliasMap)
		delete(c.items, key)
		return nil, false
	}
	entry.lastUsed = now
	return entry.aliasMap, true
}

func (c *aliasMapCache) set(key string, value *AliasMap, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maybeSweepLocked(now)

	sizeBytes := estimateAliasMapBytes(value)
	if c.maxBytes > 0 && c.totalBytes+sizeBytes > c.maxBytes {
		logger.Warn("alias_cache_memory_limit_exceeded", map[string]any{
			"item_bytes":  sizeBytes,
			"total_bytes": c.totalBytes,
			"max_bytes":   c.maxBytes,
		})
		return
	}

	if existing, ok := c.items[key]; ok {
		c.totalBytes -= estimateAliasMapBytes(existing.aliasMap)
	}
	c.items[key] = &aliasCacheEntry{aliasMap: value, lastUsed: now}
	c.totalBytes += sizeBytes
}

func (c *aliasMapCache) maybeSweepLocked(now time.Time) {
	if !c.lastSweep.IsZero() && now.Sub(c.lastSweep) < aliasCacheSweepFreq {
		return
	}
	for key, entry := range c.items {
		if now.Sub(entry.lastUsed) > aliasCacheTTL {
			c.totalBytes -= estimateAliasMapBytes(entry.aliasMap)
			delete(c.items, key)
		}
	}
	c.lastSweep = now
}

// estimateAliasMapBytes — грубая оценка размера карты для byte-cap.
func estimateAliasMapBytes(m *AliasMap) int64 {
	if m == nil {
		return 0
	}
	var n int64
	for path, alias := range m.PathToAlias {
		// обе карты хранят те же строки, плюс накладные расходы записей
		n += int64(len(path)+len(alias))*2 + 64
	}
	return n
}

// FlushAliasMaps очищает in-process кэш. Используется тестами и при
// перезагрузке реестра моделей.
func FlushAliasMaps() {
	globalAliasCache.mu.Lock()
	defer globalAliasCache.mu.Unlock()
	globalAliasCache.items = make(map[string]*aliasCacheEntry)
	globalAliasCache.totalBytes = 0
}

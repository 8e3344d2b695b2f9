package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"SearchQL/internal/db"
	"SearchQL/internal/logger"
)

const aliasRedisTTL = 2 * time.Hour

// AliasMapFromRedisOrBuild возвращает карту алиасов модели, разделяемую
// между процессами через Redis: сначала пытается прочитать готовую карту,
// на промахе строит через in-process кэш и кладёт в Redis. Без Redis
// (db.RDB == nil) деградирует до локального построения — на корректность
// это не влияет.
func AliasMapFromRedisOrBuild(ctx context.Context, m *Model) (*AliasMap, error) {
	if db.RDB == nil {
		return AliasMapFor(m)
	}

	redisKey := "aliasmap:" + m.Name

	cachedStr, err := db.RDB.Get(ctx, redisKey).Result()
	if err == nil {
		var aliasMap AliasMap
		if err := json.Unmarshal([]byte(cachedStr), &aliasMap); err == nil {
			return &aliasMap, nil
		}
		// Битая запись в кэше — перестраиваем и перезаписываем
		logger.Warn("alias_redis_invalid_entry", map[string]any{"model": m.Name})
	}

	aliasMap, err := AliasMapFor(m)
	if err != nil {
		return nil, fmt.Errorf("build alias map failed: %w", err)
	}

	jsonData, err := json.Marshal(aliasMap)
	if err != nil {
		return nil, fmt.Errorf("marshal alias map failed: %w", err)
	}
	if err := db.RDB.Set(ctx, redisKey, jsonData, aliasRedisTTL).Err(); err != nil {
		logger.Warn("alias_redis_set_failed", map[string]any{
			"model": m.Name,
			"error": err.Error(),
		})
	}

	return aliasMap, nil
}

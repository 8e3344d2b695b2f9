package db

import (
	"context"

	"github.com/redis/go-redis/v9"

	"SearchQL/internal/logger"
)

var RDB *redis.Client

// InitRedis принимает адрес явно (а не через os.Getenv). Пустой адрес
// оставляет клиент неинициализированным: Redis опционален.
func InitRedis(addr string) {
	if addr == "" {
		logger.Warn("redis_disabled", nil)
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func PingRedis() error {
	if RDB == nil {
		return nil
	}
	return RDB.Ping(context.Background()).Err()
}

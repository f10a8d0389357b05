// Package db создаёт подключения к внешним хранилищам.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"example.com/pagarme-gateway/pkg/config"
	"example.com/pagarme-gateway/pkg/logger"
)

// pingTimeout — сколько ждать Redis при старте.
const pingTimeout = 3 * time.Second

// ConnectRedis создаёт клиент Redis и проверяет соединение.
// Клиент возвращается и при ошибке ping: rate limiter пропускает запросы,
// пока Redis недоступен, поэтому старт сервиса не блокируется.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return rdb, fmt.Errorf("redis %s: %w", cfg.Addr(), err)
	}

	logger.Info().Str("addr", cfg.Addr()).Int("db", cfg.DB).Msg("Подключение к Redis установлено")
	return rdb, nil
}

package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	myErr "shopease-main/internal/types/errors"
)

type RedisStore struct {
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
}

func NewRedisStore(redisClient *redis.Client, logger *zap.SugaredLogger) *RedisStore {
	return &RedisStore{
		RedisClient: redisClient,
		Logger:      logger,
	}
}

func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := rs.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErr.ErrNotFound
		}

		rs.Logger.Error(
			"Failed get snapshot from Redis",
			zap.Error(err),
			zap.String("key", key),
		)

		return nil, myErr.ErrStoreInternal
	}

	return data, nil
}

// Set сохраняет снимок без TTL: корзина живет, пока ее не очистят
func (rs *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := rs.RedisClient.Set(ctx, key, value, 0).Err(); err != nil {
		rs.Logger.Error(
			"Failed save snapshot to Redis",
			zap.Error(err),
			zap.String("key", key),
		)

		return myErr.ErrStoreInternal
	}

	return nil
}

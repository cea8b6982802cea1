package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращает Get, если ключа нет.
var ErrCacheMiss = errors.New("cache miss")

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	// IncrWithTTL увеличивает key и при первом обращении ставит срок жизни (счётчик в окне).
	IncrWithTTL(ctx context.Context, key string, window time.Duration) (int64, error)
}

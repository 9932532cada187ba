// Package cache хранит готовые ответы публичного API.
// Значения хранятся как JSON, поэтому память и Redis взаимозаменяемы.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

// ErrCacheMiss ключ отсутствует или устарел.
var ErrCacheMiss = errors.New("cache miss")

// Cache описывает хранилище закэшированных ответов.
// Set с ttl <= 0 ничего не сохраняет.
// InvalidatePrefix удаляет ключи и увеличивает поколение префикса.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	Generation(ctx context.Context, prefix string) (uint64, error)
	Ping(ctx context.Context) error
	Name() string
	Close() error
}

// New выбирает реализацию: Redis при заданном URL, иначе память процесса.
func New(redisURL string) (Cache, error) {
	if redisURL == "" {
		return NewMemory(), nil
	}
	rc, err := NewRedis(redisURL, "portfolio:")
	if err != nil {
		return nil, fmt.Errorf("cache: redis недоступен: %w", err)
	}
	return rc, nil
}

// GetOrLoad возвращает значение из кэша или вычисляет его через load и сохраняет.
// Ключ хранится вместе с поколением своего префикса (часть ключа до первого ':').
// Чтение, начатое до инвалидации, сохранит результат под старым поколением,
// и следующие запросы его уже не увидят.
// Ошибки самого кэша не ломают запрос: значение просто берётся из load.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil || ttl <= 0 {
		return load(ctx)
	}

	gen, err := c.Generation(ctx, KeyPrefix(key))
	if err != nil {
		logger.L().WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("cache: поколение недоступно, читаем без кэша")
		return load(ctx)
	}
	versioned := fmt.Sprintf("%s@%d", key, gen)

	if raw, err := c.Get(ctx, versioned); err == nil {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		logger.L().WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("cache: чтение не удалось")
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	raw, err := json.Marshal(value)
	if err == nil {
		err = c.Set(ctx, versioned, raw, ttl)
	}
	if err != nil {
		logger.L().WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("cache: запись не удалась")
	}

	return value, nil
}

// KeyPrefix возвращает префикс инвалидации ключа: "blog:post:x" -> "blog:".
func KeyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i+1]
	}
	return key
}

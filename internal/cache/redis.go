package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis кэш поверх go-redis. Все ключи получают общий префикс.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis подключается по URL вида redis://host:6379/0 и проверяет соединение.
func NewRedis(url, prefix string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return val, nil
}

// Set с ttl <= 0 ничего не пишет: для Redis ноль означал бы ключ без срока.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// InvalidatePrefix сдвигает поколение префикса и удаляет ключи через SCAN.
// Поколение живёт вне префикса, поэтому SCAN его не задевает.
func (r *Redis) InvalidatePrefix(ctx context.Context, prefix string) error {
	if err := r.client.Incr(ctx, r.generationKey(prefix)).Err(); err != nil {
		return err
	}

	var cursor uint64
	pattern := r.prefix + prefix + "*"

	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (r *Redis) Generation(ctx context.Context, prefix string) (uint64, error) {
	gen, err := r.client.Get(ctx, r.generationKey(prefix)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *Redis) generationKey(prefix string) string {
	return r.prefix + "gen:" + prefix
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/microstartup/internal/config"
)

var (
	newRedisClient = redis.NewClient
	redisPing      = func(ctx context.Context, client *redis.Client) error { return client.Ping(ctx).Err() }
)

// RedisDB holds the client used for rate-limit counters.
type RedisDB struct {
	Client *redis.Client
}

func NewRedisDB(ctx context.Context, cfg config.RedisConfig) (*RedisDB, error) {
	client := newRedisClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisPing(ctx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr(), err)
	}

	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *RedisDB) Health(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client not initialised")
	}
	return redisPing(ctx, r.Client)
}

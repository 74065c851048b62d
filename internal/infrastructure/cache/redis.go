package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
)

const (
	clientName   = "imgpipe-ratelimit"
	pingTimeout  = 3 * time.Second
	dialTimeout  = 2 * time.Second
	queryTimeout = 500 * time.Millisecond
)

// NewRedisClient connects to the redis instance backing the upload rate limiter.
// Command timeouts are short: the limiter lets requests through when redis is slow.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   clientName,
		DialTimeout:  dialTimeout,
		ReadTimeout:  queryTimeout,
		WriteTimeout: queryTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr(), err)
	}

	return client, nil
}

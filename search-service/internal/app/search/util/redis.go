package util

import (
	"context"
	"errors"
	"fmt"
	"time"

	"miniecom/pkg/catalog"
	"miniecom/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const serviceName = "search-service"

// RedisClient читает копию каталога, которую etl-service кладёт в Redis.
// Сам поиск в Redis ничего не пишет.
type RedisClient struct {
	client *redis.Client
	key    string
}

func NewRedisClient(addr, password string, db int, key string) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client, key: key}, nil
}

func (r *RedisClient) GetCatalog(ctx context.Context) (*catalog.Payload, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	data, err := r.client.Get(ctx, r.key).Bytes()
	timer.ObserveDuration()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, r.key)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get catalog from redis: %w", err)
	}
	metrics.RecordCacheHit(serviceName, r.key)

	payload, err := catalog.DecodePayload(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog from redis: %w", err)
	}
	return &payload, nil
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

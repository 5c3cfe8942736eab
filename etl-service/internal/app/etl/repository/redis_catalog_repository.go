package repository

import (
	"context"
	"errors"
	"fmt"

	"miniecom/pkg/catalog"
	"miniecom/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const serviceName = "etl-service"

// redisCatalogRepository держит удалённую копию каталога одним ключом
type redisCatalogRepository struct {
	client *redis.Client
	key    string
}

func NewRedisCatalogRepository(client *redis.Client, key string) CatalogRepository {
	return &redisCatalogRepository{client: client, key: key}
}

// Save - один SET без TTL, читатели видят либо старый, либо новый каталог
func (r *redisCatalogRepository) Save(ctx context.Context, payload catalog.Payload) error {
	data, err := payload.Encode()
	if err != nil {
		return err
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to save catalog to redis: %w", err)
	}
	return nil
}

func (r *redisCatalogRepository) Load(ctx context.Context) (*catalog.Payload, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(serviceName, r.key)
			return nil, ErrCatalogNotFound
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get catalog from redis: %w", err)
	}
	metrics.RecordCacheHit(serviceName, r.key)

	payload, err := catalog.DecodePayload(data)
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

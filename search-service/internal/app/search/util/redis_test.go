package util

import (
	"context"
	"testing"
	"time"

	"miniecom/pkg/catalog"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "catalog:products"

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(mr.Addr(), "", 0, testKey)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestRedisClient_GetCatalog(t *testing.T) {
	// Arrange
	client, mr := newTestRedis(t)
	data, err := catalog.NewPayload([]catalog.Product{{SKU: "asus-vivobook-14", Price: 7_500_000}}, time.Now()).Encode()
	require.NoError(t, err)
	require.NoError(t, mr.Set(testKey, string(data)))

	// Act
	payload, err := client.GetCatalog(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, payload)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "asus-vivobook-14", payload.Items[0].SKU)
}

func TestRedisClient_GetCatalog_Missing(t *testing.T) {
	client, _ := newTestRedis(t)

	payload, err := client.GetCatalog(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, payload)
}

func TestRedisClient_GetCatalog_Corrupted(t *testing.T) {
	client, mr := newTestRedis(t)
	require.NoError(t, mr.Set(testKey, "not json"))

	payload, err := client.GetCatalog(context.Background())

	require.Error(t, err)
	assert.Nil(t, payload)
}

func TestRedisClient_GetCatalog_ServerDown(t *testing.T) {
	client, mr := newTestRedis(t)
	mr.Close()

	_, err := client.GetCatalog(context.Background())

	assert.Error(t, err)
	assert.Error(t, client.Ping(context.Background()))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient("127.0.0.1:1", "", 0, testKey)

	assert.Error(t, err)
}

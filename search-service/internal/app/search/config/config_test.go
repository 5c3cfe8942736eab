package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Address())
	assert.Equal(t, "catalog_events", cfg.Kafka.Topic)
	assert.Equal(t, "search-service-group", cfg.Kafka.GroupID)
	assert.Equal(t, "all", cfg.Search.TokenMatch)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Catalog.CacheTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	// Arrange
	t.Setenv("SEARCH_TOKEN_MATCH", "ANY")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000,https://shop.example")
	t.Setenv("CATALOG_CACHE_TTL", "30s")
	t.Setenv("SEARCH_DICTIONARY_PATH", "/etc/miniecom/dictionary.yaml")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "any", cfg.Search.TokenMatch)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, "/etc/miniecom/dictionary.yaml", cfg.Search.DictionaryPath)
}

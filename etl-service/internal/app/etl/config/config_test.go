package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address())
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, "catalog_events", cfg.Kafka.Topic)
	assert.Equal(t, "catalog:products", cfg.Catalog.RedisKey)
	assert.Equal(t, "0 */6 * * *", cfg.CronSchedule.RunETL)
	assert.True(t, cfg.CronSchedule.RunOnStartup)
	assert.Equal(t, 10*time.Minute, cfg.Server.RunTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	// Arrange
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ETL_RUN_ON_STARTUP", "false")
	t.Setenv("ETL_RUN_TIMEOUT", "45s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATA_DIR", "/srv/raw")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.CronSchedule.RunOnStartup)
	assert.Equal(t, 45*time.Second, cfg.Server.RunTimeout)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "/srv/raw", cfg.Source.DataDir)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	t.Setenv("ETL_RUN_TIMEOUT", "soon")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 10*time.Minute, cfg.Server.RunTimeout)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "miniecom", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=miniecom sslmode=disable", c.DSN())
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Search Service
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	MongoDB MongoDBConfig
	Kafka   KafkaConfig
	Catalog CatalogConfig
	Search  SearchConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host string
	Port string
}

// RedisConfig - Redis с удалённой копией каталога
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// MongoDBConfig - ручные записи: товары пользователей и поправки цен
type MongoDBConfig struct {
	URI      string
	Database string
}

// KafkaConfig - подписка на catalog_events для сброса кеша
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

type CatalogConfig struct {
	ProcessedPath string        // Локальный JSON, который пишет etl-service
	RedisKey      string        // Ключ удалённой копии
	CacheTTL      time.Duration // Сколько держать снимок из Redis без перечитывания
}

type SearchConfig struct {
	TokenMatch     string // all | any
	DictionaryPath string // YAML со списком брендов и стоп-слов, необязателен
}

type CORSConfig struct {
	AllowOrigins []string
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load читает окружение. Локальный .env подхватывается, если есть,
// и не перекрывает уже заданные переменные
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8081"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "miniecom"),
		},
		Kafka: KafkaConfig{
			Brokers:  getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:    getEnv("KAFKA_TOPIC", "catalog_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "search-service-group"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		Catalog: CatalogConfig{
			ProcessedPath: getEnv("PROCESSED_PATH", "data/processed/products.json"),
			RedisKey:      getEnv("CATALOG_REDIS_KEY", "catalog:products"),
			CacheTTL:      getEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		},
		Search: SearchConfig{
			TokenMatch:     strings.ToLower(getEnv("SEARCH_TOKEN_MATCH", "all")),
			DictionaryPath: getEnv("SEARCH_DICTIONARY_PATH", ""),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки ETL Service
// Источники CSV, хранилища каталога, журнал запусков в PostgreSQL, Kafka и расписание
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Source       SourceConfig
	Catalog      CatalogConfig
	CronSchedule CronScheduleConfig
	Log          LogConfig
}

// ServerConfig - HTTP сервер для healthcheck, ручного запуска и метрик
type ServerConfig struct {
	Port       string
	RunTimeout time.Duration // Ограничение на ручной запуск через POST /etl/run
}

// DatabaseConfig - PostgreSQL для журнала запусков etl_runs
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig - Redis, куда публикуется копия каталога
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - топик событий каталога (CATALOG_PUBLISHED, PRICE_CHANGED)
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// SourceConfig - откуда берутся сырые CSV
type SourceConfig struct {
	DataDir string // Корень с CSV, файлы ищутся рекурсивно
	// KeyPrefix включает разбор подсказок как для ключей блоба (raw/laptop/...)
	KeyPrefix string
}

// CatalogConfig - куда записывается готовый каталог
type CatalogConfig struct {
	ProcessedPath string // Локальный JSON файл
	RedisKey      string // Ключ удалённой копии
}

// CronScheduleConfig - настройки расписания cron задач
type CronScheduleConfig struct {
	RunETL       string // Расписание прогона, например "0 */6 * * *"
	RunOnStartup bool
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load читает окружение. Локальный .env подхватывается, если есть,
// и не перекрывает уже заданные переменные
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:       getEnv("SERVER_PORT", "8080"),
			RunTimeout: getEnvDuration("ETL_RUN_TIMEOUT", 10*time.Minute),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "miniecom"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:        getEnv("KAFKA_TOPIC", "catalog_events"),
			BatchTimeout: getEnvDuration("KAFKA_BATCH_TIMEOUT", 50*time.Millisecond),
		},
		Source: SourceConfig{
			DataDir:   getEnv("DATA_DIR", "data"),
			KeyPrefix: getEnv("SOURCE_KEY_PREFIX", ""),
		},
		Catalog: CatalogConfig{
			ProcessedPath: getEnv("PROCESSED_PATH", "data/processed/products.json"),
			RedisKey:      getEnv("CATALOG_REDIS_KEY", "catalog:products"),
		},
		CronSchedule: CronScheduleConfig{
			RunETL:       getEnv("CRON_RUN_ETL", "0 */6 * * *"),
			RunOnStartup: getEnvBool("ETL_RUN_ON_STARTUP", true),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
	}

	if cfg.Source.DataDir == "" {
		return nil, fmt.Errorf("DATA_DIR must not be empty")
	}
	if cfg.Catalog.ProcessedPath == "" {
		return nil, fmt.Errorf("PROCESSED_PATH must not be empty")
	}

	return cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *ServerConfig) Address() string {
	return ":" + c.Port
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration принимает формат time.ParseDuration ("30s", "5m")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList разбирает список через запятую: "kafka-1:9092,kafka-2:9092"
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

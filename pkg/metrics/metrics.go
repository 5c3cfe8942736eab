package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="search-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Labels: service, method, path
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты для микросервисов: от 1ms до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbConnectionsOpen - количество открытых соединений с БД
var DbConnectionsOpen = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "db_connections_open",
		Help: "Number of open database connections",
	},
	[]string{"service", "state"}, // state: idle, in_use
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"}, // operation: get, set, del, etc.
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed - полученные сообщения
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaConsumeDuration - время обработки сообщения
var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Business Метрики (ETL и поиск по каталогу)
// =============================================================================

// --- ETL ---

// EtlRunsTotal - запуски ETL по итоговому статусу
var EtlRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "etl_runs_total",
		Help: "Total number of ETL runs",
	},
	[]string{"status"}, // succeeded, failed, skipped
)

// EtlRunDuration - длительность полного прогона
var EtlRunDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "etl_run_duration_seconds",
		Help:    "Duration of ETL runs in seconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	},
)

// EtlFiles - обработанные CSV файлы
var EtlFiles = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "etl_files_total",
		Help: "Total number of source files seen by ETL",
	},
	[]string{"result"}, // processed, skipped
)

// EtlRows - строки CSV
var EtlRows = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "etl_rows_total",
		Help: "Total number of CSV rows seen by ETL",
	},
	[]string{"result"}, // accepted, dropped
)

// EtlProducts - размер последнего опубликованного каталога
var EtlProducts = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "etl_products",
		Help: "Number of products in the last published catalog",
	},
)

// --- Search ---

// SearchRequests - поисковые запросы по режиму сортировки
var SearchRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Total number of search requests",
	},
	[]string{"sort"},
)

// SearchResults - распределение количества найденных товаров
var SearchResults = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "search_results",
		Help:    "Number of items matched by a search request",
		Buckets: []float64{0, 1, 5, 10, 24, 50, 100, 500, 1000},
	},
)

// CatalogCacheLoads - откуда был взят снимок каталога
var CatalogCacheLoads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_cache_loads_total",
		Help: "Total number of catalog snapshot loads by source",
	},
	[]string{"source"}, // file, memory, redis, empty
)

// ManualRecords - ручные записи пользователей
var ManualRecords = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "manual_records_total",
		Help: "Total number of manual records stored",
	},
	[]string{"type"}, // submission, price-update
)

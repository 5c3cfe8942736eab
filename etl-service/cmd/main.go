package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"miniecom/etl-service/internal/app/etl/config"
	"miniecom/etl-service/internal/app/etl/entity"
	"miniecom/etl-service/internal/app/etl/handler"
	"miniecom/etl-service/internal/app/etl/processor"
	"miniecom/etl-service/internal/app/etl/repository"
	"miniecom/etl-service/internal/app/etl/service"
	"miniecom/etl-service/internal/app/etl/util"
	"miniecom/pkg/etl"
	"miniecom/pkg/logger"
	"miniecom/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "etl-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)
	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL ===
	// Только журнал запусков etl_runs
	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(&entity.EtlRun{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate etl_runs")
	}
	logger.Info().Str("database", cfg.Database.DBName).Msg("Connected to PostgreSQL")

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	// === РЕПОЗИТОРИИ ===
	sourceRepo := repository.NewFileSourceRepository(cfg.Source.DataDir)
	fileCatalogRepo := repository.NewFileCatalogRepository(cfg.Catalog.ProcessedPath)
	redisCatalogRepo := repository.NewRedisCatalogRepository(redisClient, cfg.Catalog.RedisKey)
	runRepo := repository.NewRunRepository(db)

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.BatchTimeout)
	defer kafkaProducer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")

	var pipelineOpts []etl.Option
	if prefix := cfg.Source.KeyPrefix; prefix != "" {
		pipelineOpts = append(pipelineOpts, etl.WithHintFunc(func(key string) etl.Hint {
			return etl.InferHintFromKey(key, prefix)
		}))
	}

	etlSvc := service.NewEtlService(
		sourceRepo,
		fileCatalogRepo,
		redisCatalogRepo,
		runRepo,
		kafkaProducer,
		pipelineOpts...,
	)

	// === CRON SCHEDULER ===
	cronScheduler := processor.NewCronScheduler(etlSvc)
	if err := cronScheduler.Start(ctx, cfg.CronSchedule.RunETL, cfg.CronSchedule.RunOnStartup); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.CronSchedule.RunETL).Msg("Failed to start cron scheduler")
	}

	// === HTTP: healthcheck, ручной запуск, метрики ===
	mux := http.NewServeMux()
	handler.NewHealthCheckHandler(db, redisClient, etlSvc).RegisterRoutes(mux)
	handler.NewEtlHandler(etlSvc, cfg.Server.RunTimeout).RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:        cfg.Server.Address(),
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// Ручной прогон отвечает только после завершения
		WriteTimeout: cfg.Server.RunTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("schedule", cfg.CronSchedule.RunETL).
			Str("data_dir", cfg.Source.DataDir).
			Msg("Starting ETL Service")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down ETL Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	// Текущий прогон прерывается отменой контекста
	stop()
	cronScheduler.Stop()

	logger.Info().Msg("ETL Service stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL используя GORM
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		timer := metrics.NewTimer()
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(5)
				sqlDB.SetMaxIdleConns(2)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				metrics.RecordDbPoolStats(serviceName, sqlDB.Stats())
				return db, nil
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Dur("elapsed", timer.Duration()).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectRedis устанавливает соединение с Redis
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	var err error
	for i := 0; i < 10; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		logger.Warn().Int("attempt", i+1).Err(err).Msg("Failed to connect to Redis, retrying...")
		time.Sleep(3 * time.Second)
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after 10 attempts: %w", err)
}

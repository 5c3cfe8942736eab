package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"miniecom/pkg/logger"
	"miniecom/pkg/search"
	"miniecom/search-service/internal/app/search/config"
	"miniecom/search-service/internal/app/search/handler"
	"miniecom/search-service/internal/app/search/processor"
	"miniecom/search-service/internal/app/search/repository"
	"miniecom/search-service/internal/app/search/service"
	"miniecom/search-service/internal/app/search/util"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const serviceName = "search-service"

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

	// === ПОДКЛЮЧЕНИЕ К MONGODB ===
	// Ручные записи: user_submissions, price_feedback, manual_dataset
	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().Str("database", cfg.MongoDB.Database).Msg("Connected to MongoDB")

	manualRepo := repository.NewManualRepository(mongoClient.Database(cfg.MongoDB.Database))
	indexCtx, indexCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := manualRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to ensure manual dataset indexes")
	}
	indexCancel()

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis - запасной источник каталога, если локального файла нет.
	// Без Redis сервис работает только с файлом
	var remoteCatalog util.RemoteCatalog
	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB, cfg.Catalog.RedisKey)
	if err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address()).Msg("Redis unavailable, remote catalog disabled")
	} else {
		remoteCatalog = redisClient
		defer redisClient.Close()
		logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")
	}

	// === ПОИСКОВЫЙ ДВИЖОК ===
	dict, err := search.LoadDictionary(cfg.Search.DictionaryPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Search.DictionaryPath).Msg("Failed to load search dictionary")
	}
	engine := search.NewEngine(dict, search.TokenMatch(cfg.Search.TokenMatch))

	catalogCache := service.NewCatalogCache(
		repository.NewFileCatalogRepository(cfg.Catalog.ProcessedPath),
		remoteCatalog,
		cfg.Catalog.CacheTTL,
	)
	searchService := service.NewSearchService(catalogCache, manualRepo, engine)
	manualService := service.NewManualService(manualRepo)

	// === KAFKA CONSUMER ===
	// CATALOG_PUBLISHED от etl-service сбрасывает кеш каталога
	kafkaConsumer := processor.NewKafkaConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
		cfg.Kafka.MinBytes,
		cfg.Kafka.MaxBytes,
		catalogCache,
	)
	kafkaConsumer.Start(ctx)

	// === HTTP ===
	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		},
	}
	if redisClient != nil {
		checks["redis"] = redisClient.Ping
	}

	router := handler.SetupRoutes(
		handler.NewSearchHandler(searchService),
		handler.NewManualHandler(manualService),
		handler.NewHealthHandler(checks),
		cfg.CORS.AllowOrigins,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("catalog", cfg.Catalog.ProcessedPath).
			Str("token_match", cfg.Search.TokenMatch).
			Msg("Starting Search Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Search Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server forced to shutdown")
	}

	stop()
	kafkaConsumer.Stop()

	logger.Info().Msg("Search Service stopped gracefully")
}

// connectMongoDB подключается к MongoDB с повторными попытками
func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, clientOptions)
		cancel()
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = client.Ping(pingCtx, readpref.Primary())
			pingCancel()
			if err == nil {
				return client, nil
			}
			client.Disconnect(context.Background())
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to MongoDB after 10 attempts: %w", err)
}

package handler

import (
	"time"

	"miniecom/pkg/logger"
	"miniecom/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Search Service.
// Аутентификации нет: поиск и ручные записи публичные
func SetupRoutes(
	searchHandler *SearchHandler,
	manualHandler *ManualHandler,
	healthHandler *HealthHandler,
	allowOrigins []string,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("search-service"))
	router.Use(cors.New(corsConfig(allowOrigins)))

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/search", searchHandler.Search)
		api.POST("/products", manualHandler.SubmitProduct) // Ручное добавление товара
		api.POST("/feedback", manualHandler.SubmitPriceFeedback)
	}

	return router
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range allowOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = allowOrigins
	return cfg
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check - проверка одной зависимости
type Check func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Check
}

// NewHealthHandler принимает проверки по именам: redis, mongodb
func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// HealthCheck - GET /health. Каталог доступен и без Redis/MongoDB,
// поэтому упавшая зависимость даёт статус degraded, а не 503
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	checks := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "healthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": "search-service",
		"checks":  checks,
	})
}

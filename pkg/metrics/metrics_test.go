package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func value(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return 0
	}
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	if out.Gauge != nil {
		return out.Gauge.GetValue()
	}
	return 0
}

func TestGinPrometheusMiddleware_UsesRouteTemplate(t *testing.T) {
	// Arrange
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test"))
	router.GET("/api/items/:sku", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := value(HttpRequestsTotal.WithLabelValues("metrics-test", "GET", "/api/items/:sku", "200"))

	// Act
	for _, sku := range []string{"asus-a", "acer-b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items/"+sku, nil))
	}

	// Assert
	after := value(HttpRequestsTotal.WithLabelValues("metrics-test", "GET", "/api/items/:sku", "200"))
	assert.Equal(t, float64(2), after-before)
}

func TestGinPrometheusMiddleware_SkipsHealth(t *testing.T) {
	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-health"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, float64(0), value(HttpRequestsTotal.WithLabelValues("metrics-health", "GET", "/health", "200")))
}

func TestRecordEtlRun(t *testing.T) {
	// Arrange
	succeeded := value(EtlRunsTotal.WithLabelValues("succeeded"))
	skipped := value(EtlFiles.WithLabelValues("skipped"))

	// Act
	RecordEtlRun("succeeded", time.Second, 3, 1, 10, 2, 7)

	// Assert
	assert.Equal(t, succeeded+1, value(EtlRunsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, skipped+1, value(EtlFiles.WithLabelValues("skipped")))
	assert.Equal(t, float64(7), value(EtlProducts))
}

func TestRecordEtlRun_FailedKeepsProductsGauge(t *testing.T) {
	RecordEtlRun("succeeded", time.Second, 1, 0, 1, 0, 5)
	RecordEtlRun("failed", time.Second, 1, 0, 1, 0, 0)

	assert.Equal(t, float64(5), value(EtlProducts))
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	time.Sleep(2 * time.Millisecond)

	assert.GreaterOrEqual(t, timer.Duration(), 2*time.Millisecond)
	assert.Greater(t, timer.Seconds(), 0.0)
}

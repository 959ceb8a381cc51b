package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sanosuguru/go-event-scheduler/internal/api/handler"
	"github.com/sanosuguru/go-event-scheduler/internal/api/middleware"
	"github.com/sanosuguru/go-event-scheduler/internal/config"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/metrics"

	_ "github.com/sanosuguru/go-event-scheduler/docs"
)

// Handlers はルーティング対象のハンドラー一式
type Handlers struct {
	Event  *handler.EventHandler
	Health *handler.HealthHandler
}

// NewServer はミドルウェアとルートを設定した Echo を返す
func NewServer(h Handlers, m *metrics.Metrics, metricsCfg config.MetricsConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	middleware.SetupMiddleware(e, m)
	RegisterRoutes(e, h, metricsCfg)
	return e
}

// RegisterRoutes はルートを登録する
func RegisterRoutes(e *echo.Echo, h Handlers, metricsCfg config.MetricsConfig) {
	e.GET("/health", h.Health.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(metricsCfg))
	e.GET("/swagger/*", echo.WrapHandler(httpSwagger.WrapHandler))

	v1 := e.Group("/api/v1")
	v1.POST("/events", h.Event.Create)
	v1.GET("/events", h.Event.List)
	v1.GET("/events/location/:location", h.Event.ListByLocation)
	v1.GET("/events/venue/:venue", h.Event.ListByVenue)
	v1.GET("/events/:id", h.Event.GetByID)
	v1.PUT("/events/:id", h.Event.Update)
	v1.DELETE("/events/:id", h.Event.Delete)
}

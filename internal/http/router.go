// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripstoryer/internal/http/handlers"
	"tripstoryer/internal/http/middleware"
)

// RouterDeps carries everything the HTTP surface needs.
// Redis may be nil; the rate limiter is then disabled.
type RouterDeps struct {
	Planner       handlers.TripPlanner
	Narrator      handlers.Synthesizer
	Redis         *redis.Client
	Logger        *zap.Logger
	PlanPerMinute int
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))

	planHandler := handlers.NewPlanHandler(deps.Planner)
	r.POST("/api/plan",
		middleware.RateLimit(deps.Redis, deps.PlanPerMinute, deps.Logger),
		planHandler.Create)

	audioHandler := handlers.NewAudioHandler(deps.Narrator)
	r.GET("/api/chapter/:id/audio", audioHandler.Get)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

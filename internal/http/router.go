package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"memory_mapping/internal/config"
	"memory_mapping/internal/http/controller"
	"memory_mapping/internal/http/middleware"
	"memory_mapping/internal/metrics"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	// Owners are opaque and may contain '/'; clients escape it as %2F in the
	// :owner segment, and the matched value is unescaped again.
	router.UseRawPath = true
	router.UnescapePathValues = true
	router.Use(
		middleware.RequestID(),
		otelgin.Middleware(cfg.OTELServiceName),
		middleware.ZapLogger(logger, "/health", "/metrics"),
		middleware.ZapRecovery(logger),
	)

	router.GET("/health", func(c *gin.Context) {
		c.Status(200)
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	router.POST("/memories", middleware.RequireOwner(), handler.AddMemory)
	router.POST("/memories/publish", middleware.RequireOwner(), handler.PublishMemory)
	router.GET("/memories/count", handler.CountMemories)
	router.GET("/memories/latest", handler.LatestMemories)
	router.GET("/owners/count", handler.CountOwners)
	router.GET("/owners/:owner/memories", handler.OwnerMemories)
	router.GET("/owners/:owner/memories/count", handler.OwnerMemoryCount)
	router.GET("/sse/memories", handler.StreamMemories)
	router.GET("/sse/owners/:owner", handler.StreamOwner)

	return router
}

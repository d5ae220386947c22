package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/config"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/automation"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/metrics"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/websocket"
)

// NewRouter builds the read-only HTTP surface consumed by presentation
// clients: device/rule state, the websocket stream and Prometheus metrics.
// Nothing here mutates the registry.
func NewRouter(cfg *config.Config, system *automation.System, collector *metrics.Collector, hub *websocket.Hub, logger *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	h := newHandlers(system, hub, logger)

	router.GET("/health", h.health)
	router.GET("/ws", func(c *gin.Context) {
		websocket.HandleWebSocket(hub, c.Writer, c.Request)
	})
	if reg := collector.Registry(); reg != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", h.status)
		v1.GET("/devices", h.listDevices)
		v1.GET("/devices/:id", h.getDevice)
		v1.GET("/rules", h.listRules)
		v1.GET("/rooms", h.listRooms)
	}

	return router
}

// loggingMiddleware logs each request with logrus fields, the way the rest
// of the simulator logs.
func loggingMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= 400 {
			entry.Warn("HTTP request")
		} else {
			entry.Debug("HTTP request")
		}
	}
}

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	Service     Service
	CallTimeout time.Duration

	// RateLimitRPS disables rate limiting when zero.
	RateLimitRPS   int
	RateLimitBurst int

	// CORSOrigins disables CORS handling when empty.
	CORSOrigins []string

	// Registry receives the HTTP collectors and backs /metrics.
	Registry *prometheus.Registry

	Logger *zap.Logger
}

// NewRouter builds the HTTP router:
//
//	GET /healthz
//	GET /metrics
//	GET /v1/addr/:name?coinType=
//	GET /v1/name/:address?coinType=
//	GET /v1/resolver/:name
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(metrics.Middleware())

	if len(cfg.CORSOrigins) > 0 {
		corsConfig := cors.Config{
			AllowMethods:  []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Accept", RequestIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}
		if containsWildcard(cfg.CORSOrigins) {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = cfg.CORSOrigins
		}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", MetricsHandler(registry))

	v1 := router.Group("/v1")
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = cfg.RateLimitRPS * 2
		}
		v1.Use(RateLimiter(cfg.RateLimitRPS, burst))
	}
	NewHandler(cfg.Service, cfg.CallTimeout, logger).Register(v1)

	return router, nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/social-interaction/config"
	"github.com/d60-Lab/social-interaction/internal/api/handler"
	"github.com/d60-Lab/social-interaction/internal/api/middleware"
)

const serviceName = "social-interaction"

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(rate.Limit(100), 200))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(otelgin.Middleware(serviceName))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	v1 := r.Group("/api/v1")
	users := v1.Group("/users")
	{
		users.POST("/visit", h.Visit)
		users.POST("/like", h.Like)
		users.GET("/:id/visitors", h.GetVisitors)
	}

	return r
}

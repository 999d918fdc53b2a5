package router

import (
	"fmt"
	"strings"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	publichandlers "github.com/dujiao-next/storefront/internal/http/handlers/public"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	catalogRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:catalog", redisPrefix),
		WindowSeconds: cfg.RateLimit.Catalog.WindowSeconds,
		MaxRequests:   cfg.RateLimit.Catalog.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", publicHandler.Health)

	// 目录文档：页面脚本通过同源地址拉取
	catalogRoute := strings.TrimSpace(cfg.Catalog.Route)
	if catalogRoute != "" {
		limiter := RateLimitMiddleware(cache.Client(), catalogRule, KeyByIP)
		r.GET(catalogRoute, limiter, publicHandler.GetCatalog)
		r.HEAD(catalogRoute, limiter, publicHandler.GetCatalog)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/products/:token", publicHandler.GetProduct)
	}

	// 其余请求交给静态页面外壳
	shell := ShellHandler(cfg.Shell.Dir, cfg.Shell.IndexFile, cfg.Catalog.DetailPage)
	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			response.NotFound(ctx, "route not found")
			return
		}
		shell(ctx)
	})

	return r
}

package router

import (
	"fmt"
	"strings"

	"github.com/promoledger/internal/cache"
	"github.com/promoledger/internal/config"
	adminhandlers "github.com/promoledger/internal/http/handlers/admin"
	publichandlers "github.com/promoledger/internal/http/handlers/public"
	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按公开/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pl"
	}
	redisClient := cache.Client()
	webhookRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:webhook", redisPrefix),
		WindowSeconds: cfg.Security.WebhookRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WebhookRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// webhook 接入
		webhooks := apiV1.Group("/webhooks")
		{
			webhooks.POST("/ticketing",
				RateLimitMiddleware(redisClient, webhookRule, KeyByIP),
				publicHandler.ReceiveTicketingWebhook,
			)
		}

		// 公开查询接口
		public := apiV1.Group("/public")
		{
			public.GET("/leaderboard", publicHandler.GetLeaderboard)
			public.GET("/promoters/:code", publicHandler.GetPromoterByCode)
		}

		// 管理接口（静态令牌鉴权）
		admin := apiV1.Group("/admin")
		admin.Use(AdminTokenMiddleware(cfg.Security.AdminToken))
		{
			admin.GET("/promoters", adminHandler.ListPromoters)
			admin.GET("/promoters/:id", adminHandler.GetPromoter)
			admin.GET("/events", adminHandler.ListEvents)
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/webhook-logs", adminHandler.ListWebhookLogs)
			admin.POST("/rankings/recalculate", adminHandler.RecalculateRankings)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	return r
}

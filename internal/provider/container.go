package provider

import (
	"time"

	"github.com/promoledger/internal/cache"
	"github.com/promoledger/internal/config"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/queue"
	"github.com/promoledger/internal/repository"
	"github.com/promoledger/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	PromoterRepo   repository.PromoterRepository
	EventRepo      repository.TicketEventRepository
	OrderRepo      repository.TicketOrderRepository
	WebhookLogRepo repository.WebhookLogRepository

	// Services
	RankingService     *service.RankingService
	WebhookService     *service.WebhookService
	PromoterService    *service.PromoterService
	LedgerQueryService *service.LedgerQueryService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.PromoterRepo = repository.NewPromoterRepository(db)
	c.EventRepo = repository.NewTicketEventRepository(db)
	c.OrderRepo = repository.NewTicketOrderRepository(db)
	c.WebhookLogRepo = repository.NewWebhookLogRepository(db)
}

func (c *Container) initServices() {
	c.RankingService = service.NewRankingService(c.PromoterRepo)
	c.WebhookService = service.NewWebhookService(
		c.PromoterRepo,
		c.EventRepo,
		c.OrderRepo,
		c.WebhookLogRepo,
		c.RankingService,
	)
	c.PromoterService = service.NewPromoterService(
		c.PromoterRepo,
		c.Config.Ranking.LeaderboardSize,
		time.Duration(c.Config.Ranking.LeaderboardCacheSeconds)*time.Second,
	)
	c.LedgerQueryService = service.NewLedgerQueryService(c.EventRepo, c.OrderRepo, c.WebhookLogRepo)
}

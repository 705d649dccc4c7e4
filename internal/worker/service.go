package worker

import (
	"context"
	"errors"
	"time"

	"github.com/promoledger/internal/config"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultRankingReconcileInterval = 5 * time.Minute
)

// Service 异步队列服务
type Service struct {
	name              string
	server            *asynq.Server
	mux               *asynq.ServeMux
	consumer          *Consumer
	reconcileInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, rankingCfg *config.RankingConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	interval := defaultRankingReconcileInterval
	if rankingCfg != nil && rankingCfg.ReconcileIntervalSeconds > 0 {
		interval = time.Duration(rankingCfg.ReconcileIntervalSeconds) * time.Second
	}
	return &Service{
		name:              "worker",
		server:            server,
		mux:               mux,
		consumer:          consumer,
		reconcileInterval: interval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.RankingService != nil {
		go s.runRankingReconcileLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runRankingReconcileLoop 周期性兜底重算排名。
// 各管道在每次落账后已同步重算，这里只是运行期安全网。
func (s *Service) runRankingReconcileLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.RankingService == nil {
		return
	}
	runOnce := func() {
		if err := s.consumer.RankingService.Recalculate(); err != nil {
			logger.Warnw("worker_ranking_reconcile_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.reconcileInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

package worker

import (
	"context"
	"encoding/json"

	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/provider"
	"github.com/promoledger/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskRankingRecalculate, c.handleRankingRecalculate)
}

func (c *Consumer) handleRankingRecalculate(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_ranking_recalculate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RankingRecalculatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_ranking_recalculate_unmarshal_failed", "error", err)
		return err
	}
	if c.RankingService == nil {
		logger.Warnw("worker_ranking_recalculate_skip_service_nil", "reason", payload.Reason)
		return nil
	}
	if err := c.RankingService.Recalculate(); err != nil {
		logger.Warnw("worker_ranking_recalculate_failed", "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_ranking_recalculated", "reason", payload.Reason)
	return nil
}

package queue

import (
	"encoding/json"

	"github.com/promoledger/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskRankingRecalculate 全量排名重算任务
	TaskRankingRecalculate = constants.TaskRankingRecalc
)

// RankingRecalculatePayload 排名重算任务载荷
type RankingRecalculatePayload struct {
	Reason string `json:"reason"`
}

// NewRankingRecalculateTask 创建排名重算任务
func NewRankingRecalculateTask(payload RankingRecalculatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRankingRecalculate, body), nil
}

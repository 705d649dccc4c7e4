package admin

import (
	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/queue"

	"github.com/gin-gonic/gin"
)

// RecalculateRankings 触发全量排名重算
// 队列可用时异步执行，否则同步兜底。
func (h *Handler) RecalculateRankings(c *gin.Context) {
	if h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueRankingRecalculate(queue.RankingRecalculatePayload{Reason: "admin_trigger"}); err != nil {
			respondError(c, response.CodeInternal, "failed to enqueue recalculation", err)
			return
		}
		response.SuccessWithMsg(c, "recalculation enqueued", gin.H{"async": true})
		return
	}

	if h.RankingService == nil {
		respondError(c, response.CodeInternal, "ranking service unavailable", nil)
		return
	}
	if err := h.RankingService.Recalculate(); err != nil {
		respondError(c, response.CodeInternal, "failed to recalculate rankings", err)
		return
	}
	response.SuccessWithMsg(c, "recalculation completed", gin.H{"async": false})
}

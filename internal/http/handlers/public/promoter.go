package public

import (
	"errors"

	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/service"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard 查询推广人排行榜
func (h *Handler) GetLeaderboard(c *gin.Context) {
	if h.PromoterService == nil {
		respondError(c, response.CodeInternal, "promoter service unavailable", nil)
		return
	}
	entries, err := h.PromoterService.Leaderboard(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load leaderboard", err)
		return
	}
	response.Success(c, entries)
}

// GetPromoterByCode 按追踪码查询推广人公开信息
func (h *Handler) GetPromoterByCode(c *gin.Context) {
	if h.PromoterService == nil {
		respondError(c, response.CodeInternal, "promoter service unavailable", nil)
		return
	}
	promoter, err := h.PromoterService.GetByTrackingCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrPromoterNotFound) {
			respondError(c, response.CodeNotFound, "promoter not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load promoter", err)
		return
	}
	response.Success(c, gin.H{
		"tracking_code":           promoter.TrackingCode,
		"display_name":            promoter.DisplayName,
		"tier":                    promoter.Tier,
		"commission_rate":         promoter.CommissionRate,
		"rank":                    promoter.Rank,
		"total_tickets_sold":      promoter.TotalTicketsSold,
		"total_revenue_generated": promoter.TotalRevenueGenerated,
		"total_commission_earned": promoter.TotalCommissionEarned,
	})
}

package service

import (
	"github.com/promoledger/internal/constants"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/models"
	"github.com/shopspring/decimal"
)

// TierResult 等级判定结果
type TierResult struct {
	Tier           string
	CommissionRate models.Money
}

// ClassifyTier 按累计售票量判定推广人等级与佣金比例。
// 负数销量视为 0 处理并告警。
func ClassifyTier(totalTicketsSold int) TierResult {
	if totalTicketsSold < 0 {
		logger.Warnw("tier_negative_tickets_clamped", "total_tickets_sold", totalTicketsSold)
		totalTicketsSold = 0
	}

	switch {
	case totalTicketsSold >= constants.TierPlatinumMinTickets:
		return TierResult{
			Tier:           constants.TierPlatinum,
			CommissionRate: models.NewMoneyFromDecimal(decimal.NewFromFloat(0.35)),
		}
	case totalTicketsSold >= constants.TierGoldMinTickets:
		return TierResult{
			Tier:           constants.TierGold,
			CommissionRate: models.NewMoneyFromDecimal(decimal.NewFromFloat(0.30)),
		}
	case totalTicketsSold >= constants.TierSilverMinTickets:
		return TierResult{
			Tier:           constants.TierSilver,
			CommissionRate: models.NewMoneyFromDecimal(decimal.NewFromFloat(0.25)),
		}
	default:
		return TierResult{
			Tier:           constants.TierBronze,
			CommissionRate: models.NewMoneyFromDecimal(decimal.NewFromFloat(0.20)),
		}
	}
}

package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/promoledger/internal/constants"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/repository"
	"gorm.io/gorm"
)

// WebhookService 票务 webhook 调度与对账服务
type WebhookService struct {
	promoterRepo repository.PromoterRepository
	eventRepo    repository.TicketEventRepository
	orderRepo    repository.TicketOrderRepository
	logRepo      repository.WebhookLogRepository
	ranking      *RankingService
	locks        *orderLock
}

// NewWebhookService 创建 webhook 服务
func NewWebhookService(
	promoterRepo repository.PromoterRepository,
	eventRepo repository.TicketEventRepository,
	orderRepo repository.TicketOrderRepository,
	logRepo repository.WebhookLogRepository,
	ranking *RankingService,
) *WebhookService {
	return &WebhookService{
		promoterRepo: promoterRepo,
		eventRepo:    eventRepo,
		orderRepo:    orderRepo,
		logRepo:      logRepo,
		ranking:      ranking,
		locks:        newOrderLock(),
	}
}

// WebhookItem 票务订单行项目
type WebhookItem struct {
	ItemID string       `json:"item_id"`
	Name   string       `json:"name"`
	Price  models.Money `json:"price"`
}

// WebhookPayload 票务平台回调载荷
type WebhookPayload struct {
	Type           string        `json:"type"`
	OrderNumber    string        `json:"order_number"`
	TrackingLink   string        `json:"tracking_link"`
	EventID        string        `json:"event_id"`
	Items          []WebhookItem `json:"items"`
	Subtotal       models.Money  `json:"subtotal"`
	Total          models.Money  `json:"total"`
	PurchaserName  string        `json:"purchaser_name"`
	PurchaserEmail string        `json:"purchaser_email"`
	PurchaserPhone string        `json:"purchaser_phone"`
	DatePurchased  *time.Time    `json:"date_purchased"`
	Cancelled      bool          `json:"cancelled"`
	Refunded       bool          `json:"refunded"`
	PartialRefund  float64       `json:"partialRefund"` // 上游附带字段，核心流程不消费
}

// DispatchResult 调度处理结果
type DispatchResult struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	OrderID          uint         `json:"order_id,omitempty"`
	PromoterID       uint         `json:"promoter_id,omitempty"`
	EventID          uint         `json:"event_id,omitempty"`
	CommissionEarned models.Money `json:"commission_earned"`
}

// Dispatch 按类型路由 webhook，每次调用无论结果如何都追加一条日志。
func (s *WebhookService) Dispatch(payload *WebhookPayload, raw models.JSON) (*DispatchResult, error) {
	if s == nil || s.promoterRepo == nil || s.orderRepo == nil || s.eventRepo == nil {
		return nil, ErrDataIntegrity
	}
	if payload == nil {
		s.appendLog(constants.WebhookOrderNumberUnknown, constants.WebhookOrderNumberUnknown, nil, nil, false, constants.WebhookErrorMalformedPayload, raw)
		return nil, ErrMalformedPayload
	}

	eventType := strings.TrimSpace(payload.Type)
	switch {
	case eventType == constants.WebhookTypeNewOrder:
		return s.ingest(payload, raw)
	case eventType == constants.WebhookTypeOrderUpdated || payload.Cancelled || payload.Refunded:
		return s.reverse(payload, raw)
	default:
		s.appendLog(eventType, s.logOrderNumber(payload), nil, nil, false, constants.WebhookErrorUnknownType, raw)
		return &DispatchResult{
			Success: true,
			Message: "ignored unknown webhook type",
		}, nil
	}
}

// LogUnparsedPayload 记录一条无法解析的回调
func (s *WebhookService) LogUnparsedPayload(raw models.JSON) {
	s.appendLog(constants.WebhookOrderNumberUnknown, constants.WebhookOrderNumberUnknown, nil, nil, false, constants.WebhookErrorMalformedPayload, raw)
}

// ingest 新订单入账：解析、去重、按售后等级计佣、原子落账。
func (s *WebhookService) ingest(payload *WebhookPayload, raw models.JSON) (*DispatchResult, error) {
	if err := validateNewOrder(payload); err != nil {
		s.appendLog(payload.Type, s.logOrderNumber(payload), nil, nil, false, constants.WebhookErrorMalformedPayload, raw)
		return nil, err
	}

	orderNumber := strings.TrimSpace(payload.OrderNumber)
	unlock := s.locks.Lock(orderNumber)
	defer unlock()

	var result *DispatchResult
	var promoterID, eventID *uint
	err := s.promoterRepo.Transaction(func(tx *gorm.DB) error {
		promoterRepo := s.promoterRepo.WithTx(tx)
		eventRepo := s.eventRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		existing, err := orderRepo.GetByOrderNumberForUpdate(orderNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			// 重复投递按幂等处理，返回已入账订单
			result = &DispatchResult{
				Success:          true,
				Message:          "duplicate delivery ignored",
				OrderID:          existing.ID,
				PromoterID:       existing.PromoterID,
				EventID:          existing.EventID,
				CommissionEarned: existing.CommissionEarned,
			}
			promoterID = &existing.PromoterID
			eventID = &existing.EventID
			return nil
		}

		promoter, err := promoterRepo.GetByTrackingCodeForUpdate(payload.TrackingLink)
		if err != nil {
			return err
		}
		if promoter == nil {
			return fmt.Errorf("%w: tracking code %s", ErrPromoterNotFound, strings.TrimSpace(payload.TrackingLink))
		}
		event, err := eventRepo.GetByExternalIDForUpdate(payload.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			return fmt.Errorf("%w: external id %s", ErrEventNotFound, strings.TrimSpace(payload.EventID))
		}
		promoterID = &promoter.ID
		eventID = &event.ID

		ticketCount := len(payload.Items)
		projected := promoter.TotalTicketsSold + ticketCount
		tierInfo := ClassifyTier(projected)
		// 本单佣金按售后等级计算并冻结
		commission := models.NewMoneyFromDecimal(payload.Subtotal.Decimal.Mul(tierInfo.CommissionRate.Decimal))

		order := &models.TicketOrder{
			OrderNumber:      orderNumber,
			PromoterID:       promoter.ID,
			EventID:          event.ID,
			TicketCount:      ticketCount,
			Subtotal:         payload.Subtotal,
			Total:            payload.Total,
			CommissionRate:   tierInfo.CommissionRate,
			CommissionEarned: commission,
			PurchaserName:    strings.TrimSpace(payload.PurchaserName),
			PurchaserEmail:   strings.TrimSpace(payload.PurchaserEmail),
			PurchaserPhone:   strings.TrimSpace(payload.PurchaserPhone),
			PurchasedAt:      *payload.DatePurchased,
		}
		for _, item := range payload.Items {
			order.Items = append(order.Items, models.TicketOrderItem{
				ExternalItemID: strings.TrimSpace(item.ItemID),
				Name:           strings.TrimSpace(item.Name),
				Price:          item.Price,
			})
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		promoter.TotalTicketsSold = projected
		promoter.TotalRevenueGenerated = models.NewMoneyFromDecimal(promoter.TotalRevenueGenerated.Decimal.Add(payload.Subtotal.Decimal))
		promoter.TotalCommissionEarned = models.NewMoneyFromDecimal(promoter.TotalCommissionEarned.Decimal.Add(commission.Decimal))
		promoter.Tier = tierInfo.Tier
		promoter.CommissionRate = tierInfo.CommissionRate
		if err := promoterRepo.Update(promoter); err != nil {
			return err
		}

		event.TotalTicketsSold += ticketCount
		event.TotalRevenue = models.NewMoneyFromDecimal(event.TotalRevenue.Decimal.Add(payload.Subtotal.Decimal))
		if err := eventRepo.Update(event); err != nil {
			return err
		}

		result = &DispatchResult{
			Success:          true,
			Message:          "order ingested",
			OrderID:          order.ID,
			PromoterID:       promoter.ID,
			EventID:          event.ID,
			CommissionEarned: commission,
		}
		return nil
	})
	if err != nil {
		s.appendLog(payload.Type, orderNumber, promoterID, eventID, false, reasonOf(err), raw)
		return nil, err
	}

	s.recalculateRanks()
	s.appendLog(payload.Type, orderNumber, promoterID, eventID, true, "", raw)
	logger.Infow("ticket_order_ingested",
		"order_number", orderNumber,
		"promoter_id", result.PromoterID,
		"event_id", result.EventID,
		"commission_earned", result.CommissionEarned.String(),
	)
	return result, nil
}

// reverse 订单冲正：用冻结值做精确逆向，终态标记幂等。
func (s *WebhookService) reverse(payload *WebhookPayload, raw models.JSON) (*DispatchResult, error) {
	if strings.TrimSpace(payload.OrderNumber) == "" {
		s.appendLog(payload.Type, constants.WebhookOrderNumberUnknown, nil, nil, false, constants.WebhookErrorMalformedPayload, raw)
		return nil, fmt.Errorf("%w: order_number is required", ErrMalformedPayload)
	}

	orderNumber := strings.TrimSpace(payload.OrderNumber)
	unlock := s.locks.Lock(orderNumber)
	defer unlock()

	var result *DispatchResult
	var promoterID, eventID *uint
	var reversed bool
	err := s.promoterRepo.Transaction(func(tx *gorm.DB) error {
		promoterRepo := s.promoterRepo.WithTx(tx)
		eventRepo := s.eventRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		order, err := orderRepo.GetByOrderNumberForUpdate(orderNumber)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: order number %s", ErrOrderNotFound, orderNumber)
		}

		promoter, err := promoterRepo.GetByIDForUpdate(order.PromoterID)
		if err != nil {
			return err
		}
		event, err := eventRepo.GetByIDForUpdate(order.EventID)
		if err != nil {
			return err
		}
		if promoter == nil || event == nil {
			return fmt.Errorf("%w: order %s references missing promoter or event", ErrDataIntegrity, orderNumber)
		}
		promoterID = &promoter.ID
		eventID = &event.ID

		newCancel := payload.Cancelled && !order.Cancelled
		newRefund := payload.Refunded && !order.Refunded
		if !newCancel && !newRefund {
			// 无新增终态标记：未声明冲正或重复投递，幂等返回
			result = &DispatchResult{
				Success:          true,
				Message:          "no reversal applied",
				OrderID:          order.ID,
				PromoterID:       promoter.ID,
				EventID:          event.ID,
				CommissionEarned: order.CommissionEarned,
			}
			return nil
		}

		// 账务只在首次进入终态时逆向一次，后续仅补记标记
		if !order.Reversed() {
			promoter.TotalTicketsSold -= order.TicketCount
			promoter.TotalRevenueGenerated = models.NewMoneyFromDecimal(promoter.TotalRevenueGenerated.Decimal.Sub(order.Subtotal.Decimal))
			promoter.TotalCommissionEarned = models.NewMoneyFromDecimal(promoter.TotalCommissionEarned.Decimal.Sub(order.CommissionEarned.Decimal))
			tierInfo := ClassifyTier(promoter.TotalTicketsSold)
			promoter.Tier = tierInfo.Tier
			promoter.CommissionRate = tierInfo.CommissionRate
			if err := promoterRepo.Update(promoter); err != nil {
				return err
			}

			event.TotalTicketsSold -= order.TicketCount
			event.TotalRevenue = models.NewMoneyFromDecimal(event.TotalRevenue.Decimal.Sub(order.Subtotal.Decimal))
			if err := eventRepo.Update(event); err != nil {
				return err
			}
			reversed = true
		}

		if newCancel {
			order.Cancelled = true
		}
		if newRefund {
			order.Refunded = true
		}
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		result = &DispatchResult{
			Success:          true,
			Message:          "order reversed",
			OrderID:          order.ID,
			PromoterID:       promoter.ID,
			EventID:          event.ID,
			CommissionEarned: order.CommissionEarned,
		}
		return nil
	})
	if err != nil {
		s.appendLog(payload.Type, orderNumber, promoterID, eventID, false, reasonOf(err), raw)
		return nil, err
	}

	if reversed {
		s.recalculateRanks()
		logger.Infow("ticket_order_reversed",
			"order_number", orderNumber,
			"promoter_id", result.PromoterID,
			"event_id", result.EventID,
			"cancelled", payload.Cancelled,
			"refunded", payload.Refunded,
		)
	}
	s.appendLog(payload.Type, orderNumber, promoterID, eventID, true, "", raw)
	return result, nil
}

// appendLog 追加审计日志，写入失败仅告警不阻断主流程。
func (s *WebhookService) appendLog(eventType, orderNumber string, promoterID, eventID *uint, success bool, errMsg string, raw models.JSON) {
	if s.logRepo == nil {
		return
	}
	entry := &models.WebhookLog{
		EventType:    strings.TrimSpace(eventType),
		OrderNumber:  strings.TrimSpace(orderNumber),
		PromoterID:   promoterID,
		EventID:      eventID,
		Success:      success,
		ErrorMessage: errMsg,
		Payload:      raw,
	}
	if entry.EventType == "" {
		entry.EventType = constants.WebhookOrderNumberUnknown
	}
	if entry.OrderNumber == "" {
		entry.OrderNumber = constants.WebhookOrderNumberUnknown
	}
	if err := s.logRepo.Append(entry); err != nil {
		logger.Warnw("webhook_log_append_failed",
			"order_number", entry.OrderNumber,
			"event_type", entry.EventType,
			"error", err,
		)
	}
}

func (s *WebhookService) recalculateRanks() {
	if s.ranking == nil {
		return
	}
	if err := s.ranking.Recalculate(); err != nil {
		logger.Warnw("ranking_recalculate_failed", "error", err)
	}
}

func (s *WebhookService) logOrderNumber(payload *WebhookPayload) string {
	if payload == nil || strings.TrimSpace(payload.OrderNumber) == "" {
		return constants.WebhookOrderNumberUnknown
	}
	return strings.TrimSpace(payload.OrderNumber)
}

// validateNewOrder 新订单载荷强校验，缺字段一律按畸形载荷处理。
func validateNewOrder(payload *WebhookPayload) error {
	if strings.TrimSpace(payload.OrderNumber) == "" {
		return fmt.Errorf("%w: order_number is required", ErrMalformedPayload)
	}
	if strings.TrimSpace(payload.TrackingLink) == "" {
		return fmt.Errorf("%w: tracking_link is required", ErrMalformedPayload)
	}
	if strings.TrimSpace(payload.EventID) == "" {
		return fmt.Errorf("%w: event_id is required", ErrMalformedPayload)
	}
	if len(payload.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrMalformedPayload)
	}
	if payload.DatePurchased == nil || payload.DatePurchased.IsZero() {
		return fmt.Errorf("%w: date_purchased is required", ErrMalformedPayload)
	}
	if payload.Subtotal.Decimal.IsNegative() || payload.Total.Decimal.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", ErrMalformedPayload)
	}
	return nil
}

// reasonOf 将错误映射为日志中的固定原因文案
func reasonOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPromoterNotFound):
		return constants.WebhookErrorPromoterNotFound
	case errors.Is(err, ErrEventNotFound):
		return constants.WebhookErrorEventNotFound
	case errors.Is(err, ErrOrderNotFound):
		return constants.WebhookErrorOrderNotFound
	case errors.Is(err, ErrMalformedPayload):
		return constants.WebhookErrorMalformedPayload
	case errors.Is(err, ErrDataIntegrity):
		return constants.WebhookErrorDataIntegrity
	default:
		return constants.WebhookErrorInternal
	}
}

package service

import (
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/repository"
)

// LedgerQueryService 管理端台账查询服务
type LedgerQueryService struct {
	eventRepo repository.TicketEventRepository
	orderRepo repository.TicketOrderRepository
	logRepo   repository.WebhookLogRepository
}

// NewLedgerQueryService 创建台账查询服务
func NewLedgerQueryService(
	eventRepo repository.TicketEventRepository,
	orderRepo repository.TicketOrderRepository,
	logRepo repository.WebhookLogRepository,
) *LedgerQueryService {
	return &LedgerQueryService{
		eventRepo: eventRepo,
		orderRepo: orderRepo,
		logRepo:   logRepo,
	}
}

// ListEvents 活动列表
func (s *LedgerQueryService) ListEvents(filter repository.TicketEventListFilter) ([]models.TicketEvent, int64, error) {
	if s == nil || s.eventRepo == nil {
		return nil, 0, ErrNotFound
	}
	return s.eventRepo.List(filter)
}

// ListOrders 订单列表
func (s *LedgerQueryService) ListOrders(filter repository.TicketOrderListFilter) ([]models.TicketOrder, int64, error) {
	if s == nil || s.orderRepo == nil {
		return nil, 0, ErrNotFound
	}
	return s.orderRepo.List(filter)
}

// ListWebhookLogs webhook 日志列表
func (s *LedgerQueryService) ListWebhookLogs(filter repository.WebhookLogListFilter) ([]models.WebhookLog, int64, error) {
	if s == nil || s.logRepo == nil {
		return nil, 0, ErrNotFound
	}
	return s.logRepo.List(filter)
}

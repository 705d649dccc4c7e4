package admin

import (
	"strings"

	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListEvents 活动列表
func (h *Handler) ListEvents(c *gin.Context) {
	if h.LedgerQueryService == nil {
		respondError(c, response.CodeInternal, "ledger query service unavailable", nil)
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.TicketEventListFilter{
		ExternalID: c.Query("external_id"),
		Keyword:    c.Query("keyword"),
		ActiveOnly: c.Query("active_only") == "true",
		Page:       page,
		PageSize:   pageSize,
	}
	rows, total, err := h.LedgerQueryService.ListEvents(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list events", err)
		return
	}
	response.SuccessWithPage(c, rows, response.NewPagination(page, pageSize, total))
}

// ListOrders 订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	if h.LedgerQueryService == nil {
		respondError(c, response.CodeInternal, "ledger query service unavailable", nil)
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.TicketOrderListFilter{
		PromoterID:  parseUintQuery(c, "promoter_id"),
		EventID:     parseUintQuery(c, "event_id"),
		OrderNumber: c.Query("order_number"),
		Page:        page,
		PageSize:    pageSize,
	}
	if states := strings.TrimSpace(c.Query("states")); states != "" {
		filter.IncludeStates = strings.Split(states, ",")
	}
	rows, total, err := h.LedgerQueryService.ListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}
	response.SuccessWithPage(c, rows, response.NewPagination(page, pageSize, total))
}

// ListWebhookLogs webhook 日志列表
func (h *Handler) ListWebhookLogs(c *gin.Context) {
	if h.LedgerQueryService == nil {
		respondError(c, response.CodeInternal, "ledger query service unavailable", nil)
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.WebhookLogListFilter{
		EventType:   c.Query("event_type"),
		OrderNumber: c.Query("order_number"),
		PromoterID:  parseUintQuery(c, "promoter_id"),
		Page:        page,
		PageSize:    pageSize,
	}
	if success := strings.TrimSpace(c.Query("success")); success != "" {
		value := success == "true"
		filter.SuccessOnly = &value
	}
	rows, total, err := h.LedgerQueryService.ListWebhookLogs(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list webhook logs", err)
		return
	}
	response.SuccessWithPage(c, rows, response.NewPagination(page, pageSize, total))
}

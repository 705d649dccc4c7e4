package admin

import (
	"errors"

	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/repository"
	"github.com/promoledger/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPromoters 推广人列表
func (h *Handler) ListPromoters(c *gin.Context) {
	if h.PromoterService == nil {
		respondError(c, response.CodeInternal, "promoter service unavailable", nil)
		return
	}
	page, pageSize := parsePagination(c)
	filter := repository.PromoterListFilter{
		TrackingCode: c.Query("tracking_code"),
		Tier:         c.Query("tier"),
		Keyword:      c.Query("keyword"),
		Page:         page,
		PageSize:     pageSize,
	}
	rows, total, err := h.PromoterService.ListPromoters(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list promoters", err)
		return
	}
	response.SuccessWithPage(c, rows, response.NewPagination(page, pageSize, total))
}

// GetPromoter 推广人详情
func (h *Handler) GetPromoter(c *gin.Context) {
	if h.PromoterService == nil {
		respondError(c, response.CodeInternal, "promoter service unavailable", nil)
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	promoter, err := h.PromoterService.GetPromoterByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPromoterNotFound) {
			respondError(c, response.CodeNotFound, "promoter not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load promoter", err)
		return
	}
	response.Success(c, promoter)
}

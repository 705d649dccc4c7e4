package public

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/service"

	"github.com/gin-gonic/gin"
)

// ReceiveTicketingWebhook 接收票务平台回调
func (h *Handler) ReceiveTicketingWebhook(c *gin.Context) {
	if h.WebhookService == nil {
		respondError(c, response.CodeInternal, "webhook service unavailable", nil)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.WebhookService.LogUnparsedPayload(nil)
		respondError(c, response.CodeInternal, "failed to read payload", err)
		return
	}

	var raw models.JSON
	if err := json.Unmarshal(body, &raw); err != nil {
		h.WebhookService.LogUnparsedPayload(models.JSON{"raw": string(body)})
		respondError(c, response.CodeInternal, "malformed payload", err)
		return
	}
	var payload service.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.WebhookService.LogUnparsedPayload(raw)
		respondError(c, response.CodeInternal, "malformed payload", err)
		return
	}

	result, err := h.WebhookService.Dispatch(&payload, raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromoterNotFound):
			respondError(c, response.CodeNotFound, "promoter not found", nil)
		case errors.Is(err, service.ErrEventNotFound):
			respondError(c, response.CodeNotFound, "event not found", nil)
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrMalformedPayload):
			respondError(c, response.CodeInternal, "malformed payload", err)
		default:
			respondError(c, response.CodeInternal, "webhook processing failed", err)
		}
		return
	}
	response.Success(c, result)
}

package public

import (
	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/logger"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		logger.Warnw("public_handler_error",
			"path", c.Request.URL.Path,
			"status_code", code,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

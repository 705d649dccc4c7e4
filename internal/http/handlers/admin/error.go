package admin

import (
	"strconv"
	"strings"

	"github.com/promoledger/internal/http/response"
	"github.com/promoledger/internal/logger"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		logger.Warnw("admin_handler_error",
			"path", c.Request.URL.Path,
			"status_code", code,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	pageSize, _ := strconv.Atoi(strings.TrimSpace(c.Query("page_size")))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", err)
		return 0, false
	}
	return uint(value), true
}

func parseUintQuery(c *gin.Context, name string) uint {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Query(name)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

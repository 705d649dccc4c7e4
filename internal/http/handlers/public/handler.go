package public

import "github.com/promoledger/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器用于 webhook 接入与公开查询 API。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

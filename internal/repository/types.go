package repository

import "time"

// PromoterListFilter 推广人列表查询条件
type PromoterListFilter struct {
	TrackingCode string
	Tier         string
	Keyword      string
	Page         int
	PageSize     int
}

// TicketEventListFilter 活动列表查询条件
type TicketEventListFilter struct {
	ExternalID string
	Keyword    string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// TicketOrderListFilter 票务订单列表查询条件
type TicketOrderListFilter struct {
	PromoterID    uint
	EventID       uint
	OrderNumber   string
	IncludeStates []string // active / cancelled / refunded
	PurchasedFrom *time.Time
	PurchasedTo   *time.Time
	Page          int
	PageSize      int
}

// WebhookLogListFilter webhook 日志列表查询条件
type WebhookLogListFilter struct {
	EventType   string
	OrderNumber string
	PromoterID  uint
	SuccessOnly *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}

// RankUpdate 排名更新项
type RankUpdate struct {
	PromoterID uint
	Rank       int
}

package constants

// 佣金等级常量
const (
	TierBronze   = "Bronze"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

// 佣金等级票数阈值（含下界）
const (
	TierSilverMinTickets   = 25
	TierGoldMinTickets     = 50
	TierPlatinumMinTickets = 100
)

// webhook 事件类型常量
const (
	WebhookTypeNewOrder     = "new_order"
	WebhookTypeOrderUpdated = "order_updated"
)

// webhook 日志失败原因常量
const (
	WebhookErrorUnknownType      = "Unknown webhook type"
	WebhookErrorPromoterNotFound = "promoter_not_found"
	WebhookErrorEventNotFound    = "event_not_found"
	WebhookErrorOrderNotFound    = "order_not_found"
	WebhookErrorDataIntegrity    = "data_integrity_error"
	WebhookErrorMalformedPayload = "malformed_payload"
	WebhookErrorInternal         = "internal_error"
)

// 无法从载荷解析订单号时记录的占位值
const (
	WebhookOrderNumberUnknown = "unknown"
)

// 队列常量
const (
	QueueDefault      = "default"
	TaskRankingRecalc = "ranking:recalculate"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "pl"
)

// 排行榜缓存键
const (
	CacheKeyLeaderboard = "leaderboard"
)

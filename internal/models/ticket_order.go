package models

import (
	"time"
)

// TicketOrder 票务订单表
type TicketOrder struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                           // 主键
	OrderNumber      string    `gorm:"uniqueIndex;not null" json:"order_number"`                       // 外部订单号（幂等键）
	PromoterID       uint      `gorm:"index;not null" json:"promoter_id"`                              // 推广人ID
	EventID          uint      `gorm:"index;not null" json:"event_id"`                                 // 活动ID
	TicketCount      int       `gorm:"not null;default:0" json:"ticket_count"`                         // 票数（冻结快照）
	Subtotal         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`          // 小计金额
	Total            Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"`             // 实付金额
	CommissionRate   Money     `gorm:"type:decimal(10,2);not null;default:0" json:"commission_rate"`   // 结算佣金比例（下单时冻结）
	CommissionEarned Money     `gorm:"type:decimal(20,2);not null;default:0" json:"commission_earned"` // 佣金金额（下单时冻结，逆向不重算）
	PurchaserName    string    `gorm:"type:varchar(100)" json:"purchaser_name,omitempty"`              // 购票人姓名
	PurchaserEmail   string    `gorm:"index" json:"purchaser_email,omitempty"`                         // 购票人邮箱
	PurchaserPhone   string    `gorm:"type:varchar(40)" json:"purchaser_phone,omitempty"`              // 购票人电话
	PurchasedAt      time.Time `gorm:"index" json:"purchased_at"`                                      // 购票时间
	Cancelled        bool      `gorm:"not null;default:false;index" json:"cancelled"`                  // 已取消
	Refunded         bool      `gorm:"not null;default:false;index" json:"refunded"`                   // 已退款
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt        time.Time `gorm:"index" json:"updated_at"`                                        // 更新时间

	Items    []TicketOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`  // 订单项
	Promoter *Promoter         `gorm:"foreignKey:PromoterID" json:"-"`             // 关联推广人
	Event    *TicketEvent      `gorm:"foreignKey:EventID" json:"-"`                // 关联活动
}

// TableName 指定表名
func (TicketOrder) TableName() string {
	return "ticket_orders"
}

// Reversed 订单账务效果是否已被逆向
func (o TicketOrder) Reversed() bool {
	return o.Cancelled || o.Refunded
}

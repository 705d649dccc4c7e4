package models

import (
	"time"
)

// TicketOrderItem 票务订单项表
type TicketOrderItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`                               // 主键
	OrderID        uint      `gorm:"index;not null" json:"order_id"`                     // 订单ID
	ExternalItemID string    `gorm:"index" json:"external_item_id"`                      // 票务平台票项ID
	Name           string    `gorm:"type:varchar(200)" json:"name"`                      // 票项名称
	Price          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	CreatedAt      time.Time `json:"created_at"`                                         // 创建时间
}

// TableName 指定表名
func (TicketOrderItem) TableName() string {
	return "ticket_order_items"
}

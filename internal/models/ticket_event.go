package models

import (
	"time"
)

// TicketEvent 票务活动表
type TicketEvent struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                       // 主键
	ExternalID       string    `gorm:"uniqueIndex;not null" json:"external_id"`                    // 票务平台活动ID
	Name             string    `gorm:"type:varchar(200);not null" json:"name"`                     // 活动名称
	TotalTicketsSold int       `gorm:"not null;default:0" json:"total_tickets_sold"`               // 累计售票数
	TotalRevenue     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_revenue"` // 累计销售额
	IsActive         bool      `gorm:"not null;default:true;index" json:"is_active"`               // 是否进行中
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt        time.Time `gorm:"index" json:"updated_at"`                                    // 更新时间
}

// TableName 指定表名
func (TicketEvent) TableName() string {
	return "ticket_events"
}

package models

import (
	"time"
)

// WebhookLog webhook 审计日志表（仅追加，不更新不删除）
type WebhookLog struct {
	ID           uint      `gorm:"primarykey" json:"id"`                        // 主键
	EventType    string    `gorm:"type:varchar(50);index" json:"event_type"`    // 声明的事件类型
	OrderNumber  string    `gorm:"index" json:"order_number"`                   // 外部订单号（无法解析时为 unknown）
	PromoterID   *uint     `gorm:"index" json:"promoter_id,omitempty"`          // 解析到的推广人ID
	EventID      *uint     `gorm:"index" json:"event_id,omitempty"`             // 解析到的活动ID
	Success      bool      `gorm:"not null;default:false;index" json:"success"` // 处理是否成功
	ErrorMessage string    `gorm:"type:varchar(255)" json:"error_message"`      // 失败原因
	Payload      JSON      `gorm:"type:text" json:"payload"`                    // 原始载荷
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                     // 接收时间
}

// TableName 指定表名
func (WebhookLog) TableName() string {
	return "webhook_logs"
}

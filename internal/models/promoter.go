package models

import (
	"time"
)

// Promoter 推广人表
type Promoter struct {
	ID                    uint      `gorm:"primarykey" json:"id"`                                                // 主键
	TrackingCode          string    `gorm:"uniqueIndex;not null" json:"tracking_code"`                           // 推广跟踪码（外部订单归因键）
	DisplayName           string    `gorm:"type:varchar(100);not null" json:"display_name"`                      // 展示名称
	Email                 string    `gorm:"index" json:"email,omitempty"`                                        // 联系邮箱
	TotalTicketsSold      int       `gorm:"not null;default:0;index" json:"total_tickets_sold"`                  // 累计售票数
	TotalRevenueGenerated Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_revenue_generated"` // 累计销售额
	TotalCommissionEarned Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_commission_earned"` // 累计佣金
	Tier                  string    `gorm:"type:varchar(20);not null" json:"tier"`                               // 佣金等级（由累计售票数派生）
	CommissionRate        Money     `gorm:"type:decimal(10,2);not null;default:0" json:"commission_rate"`        // 当前佣金比例（由累计售票数派生）
	Rank                  int       `gorm:"not null;default:0;index" json:"rank"`                                // 全局排名（1 起）
	CreatedAt             time.Time `gorm:"index" json:"created_at"`                                             // 创建时间
	UpdatedAt             time.Time `gorm:"index" json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (Promoter) TableName() string {
	return "promoters"
}

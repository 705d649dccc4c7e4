package repository

import (
	"strings"

	"github.com/promoledger/internal/models"
	"gorm.io/gorm"
)

// WebhookLogRepository webhook 日志数据访问接口
type WebhookLogRepository interface {
	WithTx(tx *gorm.DB) WebhookLogRepository

	Append(log *models.WebhookLog) error
	List(filter WebhookLogListFilter) ([]models.WebhookLog, int64, error)
}

// GormWebhookLogRepository GORM webhook 日志仓储
type GormWebhookLogRepository struct {
	db *gorm.DB
}

// NewWebhookLogRepository 创建 webhook 日志仓储
func NewWebhookLogRepository(db *gorm.DB) *GormWebhookLogRepository {
	return &GormWebhookLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWebhookLogRepository) WithTx(tx *gorm.DB) WebhookLogRepository {
	if tx == nil {
		return r
	}
	return &GormWebhookLogRepository{db: tx}
}

// Append 追加一条 webhook 日志
func (r *GormWebhookLogRepository) Append(log *models.WebhookLog) error {
	return r.db.Create(log).Error
}

// List 查询 webhook 日志列表
func (r *GormWebhookLogRepository) List(filter WebhookLogListFilter) ([]models.WebhookLog, int64, error) {
	query := r.db.Model(&models.WebhookLog{})
	if eventType := strings.TrimSpace(filter.EventType); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if orderNumber := strings.TrimSpace(filter.OrderNumber); orderNumber != "" {
		query = query.Where("order_number = ?", orderNumber)
	}
	if filter.PromoterID != 0 {
		query = query.Where("promoter_id = ?", filter.PromoterID)
	}
	if filter.SuccessOnly != nil {
		query = query.Where("success = ?", *filter.SuccessOnly)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.WebhookLog
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

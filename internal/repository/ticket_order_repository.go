package repository

import (
	"errors"
	"strings"

	"github.com/promoledger/internal/models"
	"gorm.io/gorm"
)

// TicketOrderRepository 票务订单数据访问接口
type TicketOrderRepository interface {
	WithTx(tx *gorm.DB) TicketOrderRepository

	GetByID(id uint) (*models.TicketOrder, error)
	GetByOrderNumber(orderNumber string) (*models.TicketOrder, error)
	GetByOrderNumberForUpdate(orderNumber string) (*models.TicketOrder, error)
	Create(order *models.TicketOrder) error
	Update(order *models.TicketOrder) error
	List(filter TicketOrderListFilter) ([]models.TicketOrder, int64, error)
}

// GormTicketOrderRepository GORM 票务订单仓储
type GormTicketOrderRepository struct {
	db *gorm.DB
}

// NewTicketOrderRepository 创建票务订单仓储
func NewTicketOrderRepository(db *gorm.DB) *GormTicketOrderRepository {
	return &GormTicketOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTicketOrderRepository) WithTx(tx *gorm.DB) TicketOrderRepository {
	if tx == nil {
		return r
	}
	return &GormTicketOrderRepository{db: tx}
}

// GetByID 按ID获取订单
func (r *GormTicketOrderRepository) GetByID(id uint) (*models.TicketOrder, error) {
	if id == 0 {
		return nil, nil
	}
	var order models.TicketOrder
	if err := r.db.Preload("Items").Preload("Promoter").Preload("Event").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber 按订单号获取订单
func (r *GormTicketOrderRepository) GetByOrderNumber(orderNumber string) (*models.TicketOrder, error) {
	normalized := strings.TrimSpace(orderNumber)
	if normalized == "" {
		return nil, nil
	}
	var order models.TicketOrder
	if err := r.db.Preload("Items").Where("order_number = ?", normalized).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumberForUpdate 按订单号锁定查询订单
func (r *GormTicketOrderRepository) GetByOrderNumberForUpdate(orderNumber string) (*models.TicketOrder, error) {
	normalized := strings.TrimSpace(orderNumber)
	if normalized == "" {
		return nil, nil
	}
	var order models.TicketOrder
	if err := applyForUpdate(r.db).
		Where("order_number = ?", normalized).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单（含订单项）
func (r *GormTicketOrderRepository) Create(order *models.TicketOrder) error {
	return r.db.Create(order).Error
}

// Update 更新订单
func (r *GormTicketOrderRepository) Update(order *models.TicketOrder) error {
	return r.db.Save(order).Error
}

// List 查询订单列表
func (r *GormTicketOrderRepository) List(filter TicketOrderListFilter) ([]models.TicketOrder, int64, error) {
	query := r.db.Model(&models.TicketOrder{}).Preload("Promoter").Preload("Event")
	if filter.PromoterID != 0 {
		query = query.Where("promoter_id = ?", filter.PromoterID)
	}
	if filter.EventID != 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if orderNumber := strings.TrimSpace(filter.OrderNumber); orderNumber != "" {
		query = query.Where("order_number LIKE ?", "%"+orderNumber+"%")
	}
	if len(filter.IncludeStates) > 0 {
		query = applyStateFilter(query, filter.IncludeStates)
	}
	if filter.PurchasedFrom != nil {
		query = query.Where("purchased_at >= ?", *filter.PurchasedFrom)
	}
	if filter.PurchasedTo != nil {
		query = query.Where("purchased_at <= ?", *filter.PurchasedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.TicketOrder
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// applyStateFilter 按订单状态过滤（active/cancelled/refunded 任一命中即保留）
func applyStateFilter(query *gorm.DB, states []string) *gorm.DB {
	conditions := make([]string, 0, len(states))
	for _, state := range states {
		switch strings.ToLower(strings.TrimSpace(state)) {
		case "active":
			conditions = append(conditions, "(cancelled = false AND refunded = false)")
		case "cancelled":
			conditions = append(conditions, "cancelled = true")
		case "refunded":
			conditions = append(conditions, "refunded = true")
		}
	}
	if len(conditions) == 0 {
		return query
	}
	return query.Where("(" + strings.Join(conditions, " OR ") + ")")
}

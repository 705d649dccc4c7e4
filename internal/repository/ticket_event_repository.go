package repository

import (
	"errors"
	"strings"

	"github.com/promoledger/internal/models"
	"gorm.io/gorm"
)

// TicketEventRepository 活动数据访问接口
type TicketEventRepository interface {
	WithTx(tx *gorm.DB) TicketEventRepository

	GetByID(id uint) (*models.TicketEvent, error)
	GetByExternalID(externalID string) (*models.TicketEvent, error)
	GetByExternalIDForUpdate(externalID string) (*models.TicketEvent, error)
	GetByIDForUpdate(id uint) (*models.TicketEvent, error)
	Create(event *models.TicketEvent) error
	Update(event *models.TicketEvent) error
	List(filter TicketEventListFilter) ([]models.TicketEvent, int64, error)
}

// GormTicketEventRepository GORM 活动仓储
type GormTicketEventRepository struct {
	db *gorm.DB
}

// NewTicketEventRepository 创建活动仓储
func NewTicketEventRepository(db *gorm.DB) *GormTicketEventRepository {
	return &GormTicketEventRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTicketEventRepository) WithTx(tx *gorm.DB) TicketEventRepository {
	if tx == nil {
		return r
	}
	return &GormTicketEventRepository{db: tx}
}

// GetByID 按ID获取活动
func (r *GormTicketEventRepository) GetByID(id uint) (*models.TicketEvent, error) {
	if id == 0 {
		return nil, nil
	}
	var event models.TicketEvent
	if err := r.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// GetByIDForUpdate 按ID锁定查询活动
func (r *GormTicketEventRepository) GetByIDForUpdate(id uint) (*models.TicketEvent, error) {
	if id == 0 {
		return nil, nil
	}
	var event models.TicketEvent
	if err := applyForUpdate(r.db).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// GetByExternalID 按外部活动ID获取活动
func (r *GormTicketEventRepository) GetByExternalID(externalID string) (*models.TicketEvent, error) {
	normalized := strings.TrimSpace(externalID)
	if normalized == "" {
		return nil, nil
	}
	var event models.TicketEvent
	if err := r.db.Where("external_id = ?", normalized).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// GetByExternalIDForUpdate 按外部活动ID锁定查询活动
func (r *GormTicketEventRepository) GetByExternalIDForUpdate(externalID string) (*models.TicketEvent, error) {
	normalized := strings.TrimSpace(externalID)
	if normalized == "" {
		return nil, nil
	}
	var event models.TicketEvent
	if err := applyForUpdate(r.db).
		Where("external_id = ?", normalized).
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// Create 创建活动
func (r *GormTicketEventRepository) Create(event *models.TicketEvent) error {
	return r.db.Create(event).Error
}

// Update 更新活动
func (r *GormTicketEventRepository) Update(event *models.TicketEvent) error {
	return r.db.Save(event).Error
}

// List 查询活动列表
func (r *GormTicketEventRepository) List(filter TicketEventListFilter) ([]models.TicketEvent, int64, error) {
	query := r.db.Model(&models.TicketEvent{})
	if externalID := strings.TrimSpace(filter.ExternalID); externalID != "" {
		query = query.Where("external_id = ?", externalID)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(name LIKE ? OR external_id LIKE ?)", like, like)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.TicketEvent
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

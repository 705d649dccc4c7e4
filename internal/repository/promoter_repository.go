package repository

import (
	"errors"
	"strings"

	"github.com/promoledger/internal/models"
	"gorm.io/gorm"
)

// PromoterRepository 推广人数据访问接口
type PromoterRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PromoterRepository

	GetByID(id uint) (*models.Promoter, error)
	GetByTrackingCode(code string) (*models.Promoter, error)
	GetByTrackingCodeForUpdate(code string) (*models.Promoter, error)
	GetByIDForUpdate(id uint) (*models.Promoter, error)
	Create(promoter *models.Promoter) error
	Update(promoter *models.Promoter) error
	List(filter PromoterListFilter) ([]models.Promoter, int64, error)
	ListForRanking() ([]models.Promoter, error)
	ListTop(limit int) ([]models.Promoter, error)
	BatchUpdateRanks(updates []RankUpdate) error
}

// GormPromoterRepository GORM 推广人仓储
type GormPromoterRepository struct {
	db *gorm.DB
}

// NewPromoterRepository 创建推广人仓储
func NewPromoterRepository(db *gorm.DB) *GormPromoterRepository {
	return &GormPromoterRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromoterRepository) WithTx(tx *gorm.DB) PromoterRepository {
	if tx == nil {
		return r
	}
	return &GormPromoterRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPromoterRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取推广人
func (r *GormPromoterRepository) GetByID(id uint) (*models.Promoter, error) {
	if id == 0 {
		return nil, nil
	}
	var promoter models.Promoter
	if err := r.db.First(&promoter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promoter, nil
}

// GetByIDForUpdate 按ID锁定查询推广人
func (r *GormPromoterRepository) GetByIDForUpdate(id uint) (*models.Promoter, error) {
	if id == 0 {
		return nil, nil
	}
	var promoter models.Promoter
	if err := applyForUpdate(r.db).First(&promoter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promoter, nil
}

// GetByTrackingCode 按追踪码获取推广人
func (r *GormPromoterRepository) GetByTrackingCode(code string) (*models.Promoter, error) {
	normalized := strings.TrimSpace(code)
	if normalized == "" {
		return nil, nil
	}
	var promoter models.Promoter
	if err := r.db.Where("tracking_code = ?", normalized).First(&promoter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promoter, nil
}

// GetByTrackingCodeForUpdate 按追踪码锁定查询推广人
func (r *GormPromoterRepository) GetByTrackingCodeForUpdate(code string) (*models.Promoter, error) {
	normalized := strings.TrimSpace(code)
	if normalized == "" {
		return nil, nil
	}
	var promoter models.Promoter
	if err := applyForUpdate(r.db).
		Where("tracking_code = ?", normalized).
		First(&promoter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promoter, nil
}

// Create 创建推广人
func (r *GormPromoterRepository) Create(promoter *models.Promoter) error {
	return r.db.Create(promoter).Error
}

// Update 更新推广人
func (r *GormPromoterRepository) Update(promoter *models.Promoter) error {
	return r.db.Save(promoter).Error
}

// List 查询推广人列表
func (r *GormPromoterRepository) List(filter PromoterListFilter) ([]models.Promoter, int64, error) {
	query := r.db.Model(&models.Promoter{})
	if code := strings.TrimSpace(filter.TrackingCode); code != "" {
		query = query.Where("tracking_code = ?", code)
	}
	if tier := strings.TrimSpace(filter.Tier); tier != "" {
		query = query.Where("tier = ?", tier)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(display_name LIKE ? OR email LIKE ? OR tracking_code LIKE ?)", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Promoter
	if err := query.Order("rank asc, id asc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListForRanking 按销量降序、ID升序查询全部推广人
func (r *GormPromoterRepository) ListForRanking() ([]models.Promoter, error) {
	var rows []models.Promoter
	if err := r.db.Model(&models.Promoter{}).
		Order("total_tickets_sold desc, id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTop 按当前排名查询前 N 名推广人
func (r *GormPromoterRepository) ListTop(limit int) ([]models.Promoter, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.Promoter
	if err := r.db.Model(&models.Promoter{}).
		Where("rank > 0").
		Order("rank asc").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// BatchUpdateRanks 批量写入排名
func (r *GormPromoterRepository) BatchUpdateRanks(updates []RankUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	for _, item := range updates {
		if item.PromoterID == 0 {
			continue
		}
		if err := r.db.Model(&models.Promoter{}).
			Where("id = ?", item.PromoterID).
			Update("rank", item.Rank).Error; err != nil {
			return err
		}
	}
	return nil
}

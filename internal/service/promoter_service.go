package service

import (
	"context"
	"time"

	"github.com/promoledger/internal/cache"
	"github.com/promoledger/internal/constants"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/repository"
)

// PromoterService 推广人查询服务
type PromoterService struct {
	promoterRepo    repository.PromoterRepository
	leaderboardSize int
	cacheTTL        time.Duration
}

// NewPromoterService 创建推广人查询服务
func NewPromoterService(promoterRepo repository.PromoterRepository, leaderboardSize int, cacheTTL time.Duration) *PromoterService {
	if leaderboardSize <= 0 {
		leaderboardSize = 50
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &PromoterService{
		promoterRepo:    promoterRepo,
		leaderboardSize: leaderboardSize,
		cacheTTL:        cacheTTL,
	}
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank                  int          `json:"rank"`
	TrackingCode          string       `json:"tracking_code"`
	DisplayName           string       `json:"display_name"`
	Tier                  string       `json:"tier"`
	TotalTicketsSold      int          `json:"total_tickets_sold"`
	TotalRevenueGenerated models.Money `json:"total_revenue_generated"`
	TotalCommissionEarned models.Money `json:"total_commission_earned"`
}

// Leaderboard 查询排行榜（带短 TTL 缓存）
func (s *PromoterService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	if s == nil || s.promoterRepo == nil {
		return nil, ErrNotFound
	}

	var cached []LeaderboardEntry
	hit, err := cache.GetJSON(ctx, constants.CacheKeyLeaderboard, &cached)
	if err != nil {
		logger.Warnw("leaderboard_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	promoters, err := s.promoterRepo.ListTop(s.leaderboardSize)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(promoters))
	for _, promoter := range promoters {
		entries = append(entries, LeaderboardEntry{
			Rank:                  promoter.Rank,
			TrackingCode:          promoter.TrackingCode,
			DisplayName:           promoter.DisplayName,
			Tier:                  promoter.Tier,
			TotalTicketsSold:      promoter.TotalTicketsSold,
			TotalRevenueGenerated: promoter.TotalRevenueGenerated,
			TotalCommissionEarned: promoter.TotalCommissionEarned,
		})
	}

	if err := cache.SetJSON(ctx, constants.CacheKeyLeaderboard, entries, s.cacheTTL); err != nil {
		logger.Warnw("leaderboard_cache_write_failed", "error", err)
	}
	return entries, nil
}

// GetByTrackingCode 按追踪码查询推广人公开信息
func (s *PromoterService) GetByTrackingCode(code string) (*models.Promoter, error) {
	if s == nil || s.promoterRepo == nil {
		return nil, ErrNotFound
	}
	promoter, err := s.promoterRepo.GetByTrackingCode(code)
	if err != nil {
		return nil, err
	}
	if promoter == nil {
		return nil, ErrPromoterNotFound
	}
	return promoter, nil
}

// ListPromoters 管理端推广人列表
func (s *PromoterService) ListPromoters(filter repository.PromoterListFilter) ([]models.Promoter, int64, error) {
	if s == nil || s.promoterRepo == nil {
		return nil, 0, ErrNotFound
	}
	return s.promoterRepo.List(filter)
}

// GetPromoterByID 管理端按ID查询推广人
func (s *PromoterService) GetPromoterByID(id uint) (*models.Promoter, error) {
	if s == nil || s.promoterRepo == nil {
		return nil, ErrNotFound
	}
	promoter, err := s.promoterRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promoter == nil {
		return nil, ErrPromoterNotFound
	}
	return promoter, nil
}

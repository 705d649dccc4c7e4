package service

import (
	"context"
	"sync"
	"time"

	"github.com/promoledger/internal/cache"
	"github.com/promoledger/internal/constants"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/repository"
)

// RankingService 推广人排名重算服务
type RankingService struct {
	promoterRepo repository.PromoterRepository
	mu           sync.Mutex
}

// NewRankingService 创建排名服务
func NewRankingService(promoterRepo repository.PromoterRepository) *RankingService {
	return &RankingService{promoterRepo: promoterRepo}
}

// Recalculate 全量重算排名：按累计售票量降序，同票数按ID升序，名次从 1 起。
// 重复执行结果一致，可安全反复触发。
func (s *RankingService) Recalculate() error {
	if s == nil || s.promoterRepo == nil {
		return ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	promoters, err := s.promoterRepo.ListForRanking()
	if err != nil {
		return err
	}

	updates := make([]repository.RankUpdate, 0, len(promoters))
	for idx, promoter := range promoters {
		rank := idx + 1
		if promoter.Rank == rank {
			continue
		}
		updates = append(updates, repository.RankUpdate{
			PromoterID: promoter.ID,
			Rank:       rank,
		})
	}
	if len(updates) > 0 {
		if err := s.promoterRepo.BatchUpdateRanks(updates); err != nil {
			return err
		}
	}

	// 排名变化后失效排行榜缓存
	if err := cache.Del(context.Background(), constants.CacheKeyLeaderboard); err != nil {
		logger.Warnw("leaderboard_cache_invalidate_failed", "error", err)
	}

	logger.Debugw("ranking_recalculated",
		"promoters", len(promoters),
		"updated", len(updates),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

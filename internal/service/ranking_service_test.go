package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/repository"
	"gorm.io/gorm"
)

func setupRankingServiceTest(t *testing.T) (*RankingService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:ranking_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Promoter{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewRankingService(repository.NewPromoterRepository(db)), db
}

func createRankedPromoter(t *testing.T, db *gorm.DB, code string, ticketsSold int) *models.Promoter {
	t.Helper()

	tierInfo := ClassifyTier(ticketsSold)
	promoter := &models.Promoter{
		TrackingCode:          code,
		DisplayName:           "Promoter " + code,
		TotalTicketsSold:      ticketsSold,
		TotalRevenueGenerated: models.ZeroMoney(),
		TotalCommissionEarned: models.ZeroMoney(),
		Tier:                  tierInfo.Tier,
		CommissionRate:        tierInfo.CommissionRate,
	}
	if err := db.Create(promoter).Error; err != nil {
		t.Fatalf("failed to create test promoter: %v", err)
	}
	return promoter
}

func rankOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	var promoter models.Promoter
	if err := db.First(&promoter, id).Error; err != nil {
		t.Fatalf("failed to reload promoter: %v", err)
	}
	return promoter.Rank
}

func TestRecalculateOrdersByTicketsThenID(t *testing.T) {
	svc, db := setupRankingServiceTest(t)

	first := createRankedPromoter(t, db, "p-one", 50)
	second := createRankedPromoter(t, db, "p-two", 100)
	third := createRankedPromoter(t, db, "p-three", 50)
	fourth := createRankedPromoter(t, db, "p-four", 10)

	if err := svc.Recalculate(); err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}

	if got := rankOf(t, db, second.ID); got != 1 {
		t.Fatalf("expected top seller at rank 1, got %d", got)
	}
	// 同票数按更早创建者优先
	if got := rankOf(t, db, first.ID); got != 2 {
		t.Fatalf("expected earlier promoter to win the tie at rank 2, got %d", got)
	}
	if got := rankOf(t, db, third.ID); got != 3 {
		t.Fatalf("expected later tied promoter at rank 3, got %d", got)
	}
	if got := rankOf(t, db, fourth.ID); got != 4 {
		t.Fatalf("expected lowest seller at rank 4, got %d", got)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	svc, db := setupRankingServiceTest(t)

	a := createRankedPromoter(t, db, "p-a", 30)
	b := createRankedPromoter(t, db, "p-b", 70)

	if err := svc.Recalculate(); err != nil {
		t.Fatalf("first recalculate failed: %v", err)
	}
	if err := svc.Recalculate(); err != nil {
		t.Fatalf("second recalculate failed: %v", err)
	}

	if got := rankOf(t, db, b.ID); got != 1 {
		t.Fatalf("expected rank 1, got %d", got)
	}
	if got := rankOf(t, db, a.ID); got != 2 {
		t.Fatalf("expected rank 2, got %d", got)
	}
}

func TestRecalculateReordersAfterTotalsChange(t *testing.T) {
	svc, db := setupRankingServiceTest(t)

	a := createRankedPromoter(t, db, "p-a", 80)
	b := createRankedPromoter(t, db, "p-b", 20)

	if err := svc.Recalculate(); err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if got := rankOf(t, db, a.ID); got != 1 {
		t.Fatalf("expected rank 1 before overtake, got %d", got)
	}

	if err := db.Model(&models.Promoter{}).
		Where("id = ?", b.ID).
		Update("total_tickets_sold", 120).Error; err != nil {
		t.Fatalf("failed to bump tickets: %v", err)
	}
	if err := svc.Recalculate(); err != nil {
		t.Fatalf("recalculate after change failed: %v", err)
	}

	if got := rankOf(t, db, b.ID); got != 1 {
		t.Fatalf("expected overtaking promoter at rank 1, got %d", got)
	}
	if got := rankOf(t, db, a.ID); got != 2 {
		t.Fatalf("expected displaced promoter at rank 2, got %d", got)
	}
}

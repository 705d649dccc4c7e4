package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/promoledger/internal/models"
	"gorm.io/gorm"
)

func setupPromoterRepositoryTest(t *testing.T) (*GormPromoterRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:promoter_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Promoter{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewPromoterRepository(db), db
}

func seedPromoter(t *testing.T, repo *GormPromoterRepository, code string, ticketsSold int) *models.Promoter {
	t.Helper()

	promoter := &models.Promoter{
		TrackingCode:          code,
		DisplayName:           "Promoter " + code,
		TotalTicketsSold:      ticketsSold,
		TotalRevenueGenerated: models.ZeroMoney(),
		TotalCommissionEarned: models.ZeroMoney(),
		Tier:                  "Bronze",
	}
	if err := repo.Create(promoter); err != nil {
		t.Fatalf("failed to create promoter: %v", err)
	}
	return promoter
}

func TestPromoterGetByTrackingCode(t *testing.T) {
	repo, _ := setupPromoterRepositoryTest(t)
	seedPromoter(t, repo, "alice-north", 12)

	promoter, err := repo.GetByTrackingCode("alice-north")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if promoter == nil || promoter.TotalTicketsSold != 12 {
		t.Fatalf("expected promoter with 12 tickets, got %+v", promoter)
	}

	// 前后空白应被忽略
	promoter, err = repo.GetByTrackingCode("  alice-north  ")
	if err != nil || promoter == nil {
		t.Fatalf("expected trimmed lookup to succeed, got %+v err=%v", promoter, err)
	}

	missing, err := repo.GetByTrackingCode("nobody")
	if err != nil {
		t.Fatalf("missing lookup should not error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown code, got %+v", missing)
	}
}

func TestPromoterListForRankingOrder(t *testing.T) {
	repo, _ := setupPromoterRepositoryTest(t)
	low := seedPromoter(t, repo, "p-low", 5)
	tieFirst := seedPromoter(t, repo, "p-tie-first", 40)
	top := seedPromoter(t, repo, "p-top", 90)
	tieSecond := seedPromoter(t, repo, "p-tie-second", 40)

	rows, err := repo.ListForRanking()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	expected := []uint{top.ID, tieFirst.ID, tieSecond.ID, low.ID}
	for idx, want := range expected {
		if rows[idx].ID != want {
			t.Fatalf("position %d: want promoter %d, got %d", idx, want, rows[idx].ID)
		}
	}
}

func TestPromoterBatchUpdateRanksAndListTop(t *testing.T) {
	repo, _ := setupPromoterRepositoryTest(t)
	a := seedPromoter(t, repo, "p-a", 90)
	b := seedPromoter(t, repo, "p-b", 40)
	c := seedPromoter(t, repo, "p-c", 5)

	err := repo.BatchUpdateRanks([]RankUpdate{
		{PromoterID: a.ID, Rank: 1},
		{PromoterID: b.ID, Rank: 2},
		{PromoterID: c.ID, Rank: 3},
	})
	if err != nil {
		t.Fatalf("batch update failed: %v", err)
	}

	topTwo, err := repo.ListTop(2)
	if err != nil {
		t.Fatalf("list top failed: %v", err)
	}
	if len(topTwo) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(topTwo))
	}
	if topTwo[0].ID != a.ID || topTwo[1].ID != b.ID {
		t.Fatalf("expected ranked order [%d %d], got [%d %d]", a.ID, b.ID, topTwo[0].ID, topTwo[1].ID)
	}
}

func TestPromoterListTopSkipsUnranked(t *testing.T) {
	repo, _ := setupPromoterRepositoryTest(t)
	ranked := seedPromoter(t, repo, "p-ranked", 30)
	seedPromoter(t, repo, "p-unranked", 10)

	if err := repo.BatchUpdateRanks([]RankUpdate{{PromoterID: ranked.ID, Rank: 1}}); err != nil {
		t.Fatalf("batch update failed: %v", err)
	}

	rows, err := repo.ListTop(10)
	if err != nil {
		t.Fatalf("list top failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != ranked.ID {
		t.Fatalf("expected only the ranked promoter, got %+v", rows)
	}
}

func TestPromoterTransactionRollsBackOnError(t *testing.T) {
	repo, db := setupPromoterRepositoryTest(t)

	err := repo.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if err := txRepo.Create(&models.Promoter{
			TrackingCode:          "p-rollback",
			DisplayName:           "Rollback",
			TotalRevenueGenerated: models.ZeroMoney(),
			TotalCommissionEarned: models.ZeroMoney(),
			Tier:                  "Bronze",
		}); err != nil {
			return err
		}
		return fmt.Errorf("forced failure")
	})
	if err == nil {
		t.Fatal("expected transaction error")
	}

	var count int64
	if err := db.Model(&models.Promoter{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to discard insert, got %d rows", count)
	}
}

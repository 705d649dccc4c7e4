package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/provider"
	"github.com/promoledger/internal/queue"
	"github.com/promoledger/internal/repository"
	"github.com/promoledger/internal/service"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Promoter{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	promoterRepo := repository.NewPromoterRepository(db)
	container := &provider.Container{
		PromoterRepo:   promoterRepo,
		RankingService: service.NewRankingService(promoterRepo),
	}
	return NewConsumer(container), db
}

func TestHandleRankingRecalculate(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	promoter := &models.Promoter{
		TrackingCode:          "p-worker",
		DisplayName:           "Worker Promoter",
		TotalTicketsSold:      42,
		TotalRevenueGenerated: models.ZeroMoney(),
		TotalCommissionEarned: models.ZeroMoney(),
		Tier:                  "Silver",
	}
	if err := db.Create(promoter).Error; err != nil {
		t.Fatalf("failed to create promoter: %v", err)
	}

	task, err := queue.NewRankingRecalculateTask(queue.RankingRecalculatePayload{Reason: "test"})
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	if err := consumer.handleRankingRecalculate(context.Background(), task); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	var reloaded models.Promoter
	if err := db.First(&reloaded, promoter.ID).Error; err != nil {
		t.Fatalf("failed to reload promoter: %v", err)
	}
	if reloaded.Rank != 1 {
		t.Fatalf("expected rank 1 after recalculation, got %d", reloaded.Rank)
	}
}

func TestHandleRankingRecalculateBadPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskRankingRecalculate, []byte("{not json"))
	if err := consumer.handleRankingRecalculate(context.Background(), task); err == nil {
		t.Fatal("expected unmarshal error for malformed payload")
	}
}

func TestHandleRankingRecalculateNilTask(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	if err := consumer.handleRankingRecalculate(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be ignored, got %v", err)
	}
}

package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/promoledger/internal/models"
	"gorm.io/gorm"
)

func setupTicketOrderRepositoryTest(t *testing.T) (*GormTicketOrderRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:ticket_order_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Promoter{},
		&models.TicketEvent{},
		&models.TicketOrder{},
		&models.TicketOrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewTicketOrderRepository(db), db
}

func seedOrder(t *testing.T, repo *GormTicketOrderRepository, orderNumber string, cancelled, refunded bool) *models.TicketOrder {
	t.Helper()

	order := &models.TicketOrder{
		OrderNumber:      orderNumber,
		PromoterID:       1,
		EventID:          1,
		TicketCount:      2,
		Subtotal:         models.ZeroMoney(),
		Total:            models.ZeroMoney(),
		CommissionRate:   models.ZeroMoney(),
		CommissionEarned: models.ZeroMoney(),
		PurchasedAt:      time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Cancelled:        cancelled,
		Refunded:         refunded,
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}

func TestTicketOrderGetByOrderNumber(t *testing.T) {
	repo, _ := setupTicketOrderRepositoryTest(t)
	seedOrder(t, repo, "ORD-100", false, false)

	order, err := repo.GetByOrderNumber("  ORD-100  ")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if order == nil || order.OrderNumber != "ORD-100" {
		t.Fatalf("expected trimmed lookup to find ORD-100, got %+v", order)
	}

	missing, err := repo.GetByOrderNumber("ORD-MISSING")
	if err != nil {
		t.Fatalf("missing lookup should not error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown order, got %+v", missing)
	}
}

func TestTicketOrderGetByOrderNumberForUpdate(t *testing.T) {
	repo, _ := setupTicketOrderRepositoryTest(t)
	seedOrder(t, repo, "ORD-200", false, false)

	order, err := repo.GetByOrderNumberForUpdate("ORD-200")
	if err != nil {
		t.Fatalf("locked lookup failed: %v", err)
	}
	if order == nil || order.OrderNumber != "ORD-200" {
		t.Fatalf("expected ORD-200, got %+v", order)
	}
}

func TestTicketOrderDuplicateOrderNumberRejected(t *testing.T) {
	repo, _ := setupTicketOrderRepositoryTest(t)
	seedOrder(t, repo, "ORD-300", false, false)

	dup := &models.TicketOrder{
		OrderNumber:      "ORD-300",
		PromoterID:       1,
		EventID:          1,
		TicketCount:      1,
		Subtotal:         models.ZeroMoney(),
		Total:            models.ZeroMoney(),
		CommissionRate:   models.ZeroMoney(),
		CommissionEarned: models.ZeroMoney(),
		PurchasedAt:      time.Now(),
	}
	if err := repo.Create(dup); err == nil {
		t.Fatal("expected unique constraint violation for duplicate order number")
	}
}

func TestTicketOrderListStateFilter(t *testing.T) {
	repo, _ := setupTicketOrderRepositoryTest(t)
	active := seedOrder(t, repo, "ORD-A", false, false)
	cancelled := seedOrder(t, repo, "ORD-C", true, false)
	refunded := seedOrder(t, repo, "ORD-R", false, true)

	rows, total, err := repo.List(TicketOrderListFilter{IncludeStates: []string{"active"}})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != active.ID {
		t.Fatalf("expected only the active order, got total=%d rows=%+v", total, rows)
	}

	rows, total, err = repo.List(TicketOrderListFilter{IncludeStates: []string{"cancelled", "refunded"}})
	if err != nil {
		t.Fatalf("list terminal failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 terminal orders, got %d", total)
	}
	seen := map[uint]bool{}
	for _, row := range rows {
		seen[row.ID] = true
	}
	if !seen[cancelled.ID] || !seen[refunded.ID] {
		t.Fatalf("expected cancelled and refunded orders, got %+v", rows)
	}

	// 空过滤返回全部
	_, total, err = repo.List(TicketOrderListFilter{})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 orders, got %d", total)
	}
}

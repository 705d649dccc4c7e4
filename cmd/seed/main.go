package main

import (
	"github.com/promoledger/internal/config"
	"github.com/promoledger/internal/logger"
	"github.com/promoledger/internal/models"
	"github.com/promoledger/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加推广人
	promoters := []models.Promoter{
		{TrackingCode: "alice-north", DisplayName: "Alice North", Email: "alice@example.com"},
		{TrackingCode: "bob-river", DisplayName: "Bob River", Email: "bob@example.com"},
		{TrackingCode: "carol-hill", DisplayName: "Carol Hill", Email: "carol@example.com"},
	}
	for i := range promoters {
		tier := service.ClassifyTier(0)
		promoters[i].Tier = tier.Tier
		promoters[i].CommissionRate = tier.CommissionRate
		promoters[i].TotalRevenueGenerated = models.ZeroMoney()
		promoters[i].TotalCommissionEarned = models.ZeroMoney()

		var existing models.Promoter
		if err := models.DB.Where("tracking_code = ?", promoters[i].TrackingCode).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promoters[i]).Error; err != nil {
				stdLog.Printf("Failed to create promoter %s: %v", promoters[i].TrackingCode, err)
			} else {
				stdLog.Printf("Created promoter: %s", promoters[i].TrackingCode)
			}
		} else {
			stdLog.Printf("Promoter already exists: %s", promoters[i].TrackingCode)
		}
	}

	// 添加活动
	events := []models.TicketEvent{
		{ExternalID: "evt-summer-fest", Name: "Summer Music Festival"},
		{ExternalID: "evt-tech-conf", Name: "Tech Conference 2026"},
		{ExternalID: "evt-comedy-night", Name: "Comedy Night"},
	}
	for i := range events {
		events[i].TotalRevenue = models.NewMoneyFromDecimal(decimal.Zero)
		events[i].IsActive = true

		var existing models.TicketEvent
		if err := models.DB.Where("external_id = ?", events[i].ExternalID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&events[i]).Error; err != nil {
				stdLog.Printf("Failed to create event %s: %v", events[i].ExternalID, err)
			} else {
				stdLog.Printf("Created event: %s", events[i].ExternalID)
			}
		} else {
			stdLog.Printf("Event already exists: %s", events[i].ExternalID)
		}
	}

	stdLog.Printf("Seed completed")
}

package main

import (
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"crossquote/internal/config"
	"crossquote/internal/models"
	"crossquote/internal/repositories"
	"crossquote/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		zapLogger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(cfg, zapLogger); err != nil {
		zapLogger.Fatal("init postgres", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				zapLogger.Warn("close postgres", zap.Error(err))
			}
		}
	}()

	var existing models.Merchant
	if err := repositories.DB.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		zapLogger.Info("admin account already exists", zap.String("email", adminEmail))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		zapLogger.Fatal("hash password", zap.Error(err))
	}

	admin := models.Merchant{
		Email:        adminEmail,
		Password:     string(hashed),
		BusinessName: config.GetEnv("ADMIN_BUSINESS_NAME", "Platform Operations"),
		Country:      config.GetEnv("ADMIN_COUNTRY", "SG"),
		SellerTier:   string(models.TierStandard),
		Role:         models.RoleAdmin,
		Status:       models.MerchantStatusActive,
		SignupDate:   time.Now().UTC(),
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&admin).Error; err != nil {
		zapLogger.Fatal("create admin account", zap.Error(err))
	}

	zapLogger.Info("admin account created",
		zap.String("email", adminEmail),
		zap.Uint("merchant_id", admin.ID))
}

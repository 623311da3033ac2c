package repositories

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"ledger/internal/config"
	"ledger/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenPostgres connects to the relational store and applies the pool settings.
func OpenPostgres(cfg config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)

	// Only warnings and errors; a missing wallet is not worth a log line.
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

// MigratePostgres creates the schema and provisions the seed wallets.
// Existing wallets are left untouched.
func MigratePostgres(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&models.Wallet{}, &models.Transaction{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// AutoMigrate only adds checks when it creates the table.
	if !db.Migrator().HasConstraint(&models.Wallet{}, "wallet_total_within_limit") {
		if err := db.Migrator().CreateConstraint(&models.Wallet{}, "wallet_total_within_limit"); err != nil {
			return fmt.Errorf("failed to create limit constraint: %w", err)
		}
	}

	wallets := models.SeedWallets()
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&wallets).Error
	if err != nil {
		return fmt.Errorf("failed to seed wallets: %w", err)
	}

	slog.Info("postgres schema ready", "wallets", len(wallets))
	return nil
}

// ResetPostgres drops every transaction and zeroes every wallet total.
func ResetPostgres(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE transactions RESTART IDENTITY").Error; err != nil {
			return fmt.Errorf("failed to truncate transactions: %w", err)
		}
		if err := tx.Model(&models.Wallet{}).Where("1 = 1").Update("total", 0).Error; err != nil {
			return fmt.Errorf("failed to reset wallets: %w", err)
		}
		return nil
	})
}

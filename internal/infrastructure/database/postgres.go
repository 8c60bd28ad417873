package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/salonpos-api/internal/config"
	"github.com/sangkips/salonpos-api/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log *logrus.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	log.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// Models lists every persisted entity, in dependency order
func Models() []interface{} {
	return []interface{}{
		// Collaborator registries
		&entity.Outlet{},
		&entity.Customer{},
		&entity.PaymentMode{},
		&entity.LoyaltyRule{},
		&entity.Instrument{},
		&entity.InstrumentUsage{},

		// Invoices
		&entity.OutletSequence{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.InvoiceTax{},
		&entity.InvoiceDiscount{},
		&entity.InvoiceTender{},
		&entity.InvoiceLog{},

		// Register ledger
		&entity.Register{},
		&entity.RegisterPosting{},
		&entity.RegisterModeTotal{},
		&entity.RegisterCloseEntry{},
		&entity.CashUsage{},

		// System entities
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// DefaultPaymentModes are created on first start
func DefaultPaymentModes() []entity.PaymentMode {
	return []entity.PaymentMode{
		{Name: "Cash", IsCash: true, IsActive: true, SortOrder: 1},
		{Name: "Card", IsActive: true, SortOrder: 2},
		{Name: "Bank Transfer", IsActive: true, SortOrder: 3},
		{Name: "Mobile Money", IsActive: true, SortOrder: 4},
	}
}

// SeedDefaultData seeds the payment mode registry
func SeedDefaultData(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Seeding default data...")

	modes := DefaultPaymentModes()
	for i := range modes {
		var existing entity.PaymentMode
		err := db.Where("name = ?", modes[i].Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up payment mode %s: %w", modes[i].Name, err)
		}
		if err := db.Create(&modes[i]).Error; err != nil {
			log.WithError(err).Warnf("failed to create payment mode %s", modes[i].Name)
		}
	}

	log.Info("Default data seeding completed")
	return nil
}

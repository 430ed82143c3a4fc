// Package database opens the PostgreSQL connection and runs schema migration.
package database

import (
	accountmodel "github.com/cashfold/checking/infra/repository/account"
	limitmodel "github.com/cashfold/checking/infra/repository/limit"
	transactionmodel "github.com/cashfold/checking/infra/repository/transaction"
	"github.com/cashfold/checking/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database connection. SQL logging is enabled outside
// production.
func New(cfg config.DB, env string) (*gorm.DB, error) {
	logMode := logger.Warn
	if env == "production" {
		logMode = logger.Silent
	}
	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountmodel.Account{},
		&transactionmodel.Transaction{},
		&limitmodel.WithdrawalLimit{},
	)
}

package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"schoolpay/internal/config"
	"schoolpay/internal/models/db_models"
)

// OpenGorm opens the relational store selected by cfg.Driver (postgres or sqlite).
func OpenGorm(cfg config.StoreConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("store driver %q is not a gorm driver", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer; serialise access through one connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("database connected", zap.String("driver", cfg.Driver))
	return db, nil
}

func CloseGorm(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("error getting database instance", zap.Error(err))
		return err
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("error closing database connection", zap.Error(err))
		return err
	}
	log.Info("database connection closed")
	return nil
}

// MigrateGorm creates the tables and unique indexes if they do not exist.
func MigrateGorm(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Student{},
		&db_models.Transaction{},
		&db_models.WebhookEvent{},
	)
}

type gormPinger struct {
	db *gorm.DB
}

func NewGormPinger(db *gorm.DB) Pinger {
	return &gormPinger{db: db}
}

func (p *gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

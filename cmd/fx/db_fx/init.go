package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"schoolpay/internal/config"
	"schoolpay/internal/infra"
	"schoolpay/internal/repositories"
)

// Module wires the GORM-backed store (postgres or sqlite) and runs the schema migration on start.
var Module = fx.Options(
	fx.Provide(
		provideDB,
		provideTransactionRepo,
		provideStudentRepo,
		provideWebhookEventRepo,
		infra.NewGormPinger,
	),
	fx.Invoke(infra.MigrateGorm),
)

func provideDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.OpenGorm(cfg.Store, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return infra.CloseGorm(db, log)
		},
	})
	return db, nil
}

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideStudentRepo(db *gorm.DB) repositories.StudentRepository {
	return repositories.NewStudentRepository(db)
}

func provideWebhookEventRepo(db *gorm.DB) repositories.WebhookEventRepository {
	return repositories.NewWebhookEventRepository(db)
}

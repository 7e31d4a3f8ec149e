package mongo_fx

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"schoolpay/internal/config"
	"schoolpay/internal/infra"
	"schoolpay/internal/repositories"
)

// Module wires the MongoDB-backed store and ensures its indexes on start.
var Module = fx.Options(
	fx.Provide(
		provideClient,
		provideDatabase,
		repositories.NewMongoTransactionRepository,
		repositories.NewMongoStudentRepository,
		repositories.NewMongoWebhookEventRepository,
		infra.NewMongoPinger,
	),
	fx.Invoke(ensureIndexes),
)

func provideClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*mongo.Client, error) {
	client, err := infra.OpenMongo(context.Background(), cfg.Store, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return infra.CloseMongo(ctx, client, log)
		},
	})
	return client, nil
}

func provideDatabase(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.Store.MongoDatabase)
}

func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return infra.MigrateMongo(ctx, db)
}

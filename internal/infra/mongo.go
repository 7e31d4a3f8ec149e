package infra

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"schoolpay/internal/config"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func OpenMongo(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("database connected", zap.String("driver", config.DriverMongo), zap.String("database", cfg.MongoDatabase))
	return client, nil
}

func CloseMongo(ctx context.Context, client *mongo.Client, log *zap.Logger) error {
	if err := client.Disconnect(ctx); err != nil {
		log.Error("error closing mongo connection", zap.Error(err))
		return err
	}
	log.Info("database connection closed")
	return nil
}

// MigrateMongo creates the unique indexes the document model relies on.
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	plain := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}

	indexes := map[string][]mongo.IndexModel{
		"students":       {unique("student_id"), plain("school_id")},
		"transactions":   {unique("collect_id"), unique("custom_order_id"), plain("school_id"), plain("transaction_date")},
		"webhook_events": {plain("order_id")},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

type mongoPinger struct {
	client *mongo.Client
}

func NewMongoPinger(client *mongo.Client) Pinger {
	return &mongoPinger{client: client}
}

func (p *mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

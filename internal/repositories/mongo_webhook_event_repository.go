package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"schoolpay/internal/models/db_models"
	"schoolpay/pkg/utils"
)

type mongoWebhookEventRepository struct {
	events *mongo.Collection
}

func NewMongoWebhookEventRepository(db *mongo.Database) WebhookEventRepository {
	return &mongoWebhookEventRepository{events: db.Collection(webhookEventsCollection)}
}

func (r *mongoWebhookEventRepository) Create(ctx context.Context, event *db_models.WebhookEvent) error {
	received := event.ReceivedAt
	if received.IsZero() {
		received = utils.NowUTC()
	}
	res, err := r.events.InsertOne(ctx, webhookEventDocument{
		OrderID:    event.OrderID,
		StatusCode: event.StatusCode,
		Payload:    string(event.Payload),
		Outcome:    event.Outcome,
		Error:      event.Error,
		ReceivedAt: received.UTC(),
	})
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = objectUUID(oid)
	}
	event.ReceivedAt = received.UTC()
	return nil
}

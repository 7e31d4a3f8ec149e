package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"schoolpay/internal/models/db_models"
	"schoolpay/internal/query"
	"schoolpay/pkg/utils"
)

type mongoTransactionRepository struct {
	transactions *mongo.Collection
}

func NewMongoTransactionRepository(db *mongo.Database) TransactionRepository {
	return &mongoTransactionRepository{transactions: db.Collection(transactionsCollection)}
}

func (r *mongoTransactionRepository) Find(ctx context.Context, f query.Filter, sort query.Sort, offset, limit int) ([]db_models.Transaction, error) {
	pipeline, err := mongoPipeline(f)
	if err != nil {
		return nil, err
	}

	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: mongoSort(sort)}})
	if offset > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: int64(offset)}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(limit)}})
	}

	cur, err := r.transactions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []transactionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	txns := make([]db_models.Transaction, 0, len(docs))
	for _, d := range docs {
		txns = append(txns, d.model())
	}
	return txns, nil
}

func (r *mongoTransactionRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	pipeline, err := mongoPipeline(f)
	if err != nil {
		return 0, err
	}
	pipeline = append(pipeline, bson.D{{Key: "$count", Value: "n"}})

	cur, err := r.transactions.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var out []struct {
		N int64 `bson:"n"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].N, nil
}

func (r *mongoTransactionRepository) GetByCustomOrderID(ctx context.Context, customOrderID string) (*db_models.Transaction, error) {
	return r.findOne(ctx, bson.M{"custom_order_id": customOrderID})
}

func (r *mongoTransactionRepository) GetByCollectID(ctx context.Context, collectID string) (*db_models.Transaction, error) {
	return r.findOne(ctx, bson.M{"collect_id": collectID})
}

func (r *mongoTransactionRepository) findOne(ctx context.Context, filter bson.M) (*db_models.Transaction, error) {
	var doc transactionDocument
	if err := r.transactions.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	txn := doc.model()
	return &txn, nil
}

func (r *mongoTransactionRepository) UpdateStatusByCustomOrderID(ctx context.Context, customOrderID string, status db_models.TransactionStatus) (*db_models.Transaction, error) {
	return r.findOneAndSet(ctx, bson.M{"custom_order_id": customOrderID}, bson.M{"status": status})
}

func (r *mongoTransactionRepository) ApplyGatewayUpdate(ctx context.Context, collectID string, upd GatewayUpdate) (*db_models.Transaction, error) {
	orderAmount, err := decimalValue(upd.OrderAmount)
	if err != nil {
		return nil, err
	}
	txnAmount, err := decimalValue(upd.TransactionAmount)
	if err != nil {
		return nil, err
	}
	return r.findOneAndSet(ctx, bson.M{"collect_id": collectID}, bson.M{
		"status":             upd.Status,
		"order_amount":       orderAmount,
		"transaction_amount": txnAmount,
		"gateway":            upd.Gateway,
		"bank_reference":     upd.BankReference,
	})
}

func (r *mongoTransactionRepository) findOneAndSet(ctx context.Context, filter, set bson.M) (*db_models.Transaction, error) {
	set["updatedAt"] = utils.NowUTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc transactionDocument
	err := r.transactions.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	txn := doc.model()
	return &txn, nil
}

func (r *mongoTransactionRepository) CreateBatch(ctx context.Context, txns []db_models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	now := utils.NowUTC()
	docs := make([]interface{}, 0, len(txns))
	for _, t := range txns {
		doc, err := newTransactionDocument(t, now)
		if err != nil {
			return fmt.Errorf("transaction %s: %w", t.CollectID, err)
		}
		docs = append(docs, doc)
	}
	_, err := r.transactions.InsertMany(ctx, docs)
	return translateMongoError(err)
}

func translateMongoError(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

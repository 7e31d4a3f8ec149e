package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"schoolpay/internal/models/db_models"
	"schoolpay/internal/query"
)

type TransactionRepository interface {
	// Find returns matching transactions in sort order. A limit <= 0 means unbounded.
	Find(ctx context.Context, filter query.Filter, sort query.Sort, offset, limit int) ([]db_models.Transaction, error)
	Count(ctx context.Context, filter query.Filter) (int64, error)

	GetByCustomOrderID(ctx context.Context, customOrderID string) (*db_models.Transaction, error)
	GetByCollectID(ctx context.Context, collectID string) (*db_models.Transaction, error)

	// The update methods change a single record atomically and return it as stored
	// afterwards, or nil when nothing matched.
	UpdateStatusByCustomOrderID(ctx context.Context, customOrderID string, status db_models.TransactionStatus) (*db_models.Transaction, error)
	ApplyGatewayUpdate(ctx context.Context, collectID string, upd GatewayUpdate) (*db_models.Transaction, error)

	CreateBatch(ctx context.Context, txns []db_models.Transaction) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) scoped(ctx context.Context, filter query.Filter) (*gorm.DB, error) {
	return applyFilter(r.db.WithContext(ctx).Model(&db_models.Transaction{}), filter)
}

func (r *transactionRepository) Find(ctx context.Context, filter query.Filter, sort query.Sort, offset, limit int) ([]db_models.Transaction, error) {
	tx, err := r.scoped(ctx, filter)
	if err != nil {
		return nil, err
	}

	tx = tx.Order(orderClause(sort))
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var txns []db_models.Transaction
	if err := tx.Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) Count(ctx context.Context, filter query.Filter) (int64, error) {
	tx, err := r.scoped(ctx, filter)
	if err != nil {
		return 0, err
	}
	var n int64
	err = tx.Count(&n).Error
	return n, err
}

// ────────────────────────────────────────────────────────────────
// Single-record reads return (nil, nil) when no row matches.
// ────────────────────────────────────────────────────────────────

func (r *transactionRepository) GetByCustomOrderID(ctx context.Context, customOrderID string) (*db_models.Transaction, error) {
	return r.first(ctx, "custom_order_id = ?", customOrderID)
}

func (r *transactionRepository) GetByCollectID(ctx context.Context, collectID string) (*db_models.Transaction, error) {
	return r.first(ctx, "collect_id = ?", collectID)
}

func (r *transactionRepository) first(ctx context.Context, where string, arg string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := r.db.WithContext(ctx).Where(where, arg).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) UpdateStatusByCustomOrderID(ctx context.Context, customOrderID string, status db_models.TransactionStatus) (*db_models.Transaction, error) {
	return r.updateOne(ctx, "custom_order_id = ?", customOrderID, map[string]interface{}{
		"status": status,
	})
}

func (r *transactionRepository) ApplyGatewayUpdate(ctx context.Context, collectID string, upd GatewayUpdate) (*db_models.Transaction, error) {
	return r.updateOne(ctx, "collect_id = ?", collectID, map[string]interface{}{
		"status":             upd.Status,
		"order_amount":       upd.OrderAmount,
		"transaction_amount": upd.TransactionAmount,
		"gateway":            upd.Gateway,
		"bank_reference":     upd.BankReference,
	})
}

// updateOne issues a single UPDATE and reads the row back inside the same transaction.
func (r *transactionRepository) updateOne(ctx context.Context, where string, arg string, values map[string]interface{}) (*db_models.Transaction, error) {
	var txn db_models.Transaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.Transaction{}).Where(where, arg).Updates(values)
		if res.Error != nil {
			return fmt.Errorf("update transaction: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where(where, arg).First(&txn).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) CreateBatch(ctx context.Context, txns []db_models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(&txns, 100).Error; err != nil {
			return translateGormError(err)
		}
		return nil
	})
}

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

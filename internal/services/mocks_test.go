package services

import (
	"context"
	"errors"

	"schoolpay/internal/models/db_models"
	"schoolpay/internal/query"
	"schoolpay/internal/repositories"
)

var errStoreDown = errors.New("connection refused")

type mockTransactionRepo struct {
	findFn        func(ctx context.Context, f query.Filter, s query.Sort, offset, limit int) ([]db_models.Transaction, error)
	countFn       func(ctx context.Context, f query.Filter) (int64, error)
	byOrderFn     func(ctx context.Context, id string) (*db_models.Transaction, error)
	byCollectFn   func(ctx context.Context, id string) (*db_models.Transaction, error)
	updateFn      func(ctx context.Context, id string, st db_models.TransactionStatus) (*db_models.Transaction, error)
	gatewayFn     func(ctx context.Context, id string, upd repositories.GatewayUpdate) (*db_models.Transaction, error)
	createBatchFn func(ctx context.Context, txns []db_models.Transaction) error
}

func (m *mockTransactionRepo) Find(ctx context.Context, f query.Filter, s query.Sort, offset, limit int) ([]db_models.Transaction, error) {
	if m.findFn != nil {
		return m.findFn(ctx, f, s, offset, limit)
	}
	return nil, nil
}

func (m *mockTransactionRepo) Count(ctx context.Context, f query.Filter) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, f)
	}
	return 0, nil
}

func (m *mockTransactionRepo) GetByCustomOrderID(ctx context.Context, id string) (*db_models.Transaction, error) {
	if m.byOrderFn != nil {
		return m.byOrderFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTransactionRepo) GetByCollectID(ctx context.Context, id string) (*db_models.Transaction, error) {
	if m.byCollectFn != nil {
		return m.byCollectFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTransactionRepo) UpdateStatusByCustomOrderID(ctx context.Context, id string, st db_models.TransactionStatus) (*db_models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, st)
	}
	return nil, nil
}

func (m *mockTransactionRepo) ApplyGatewayUpdate(ctx context.Context, id string, upd repositories.GatewayUpdate) (*db_models.Transaction, error) {
	if m.gatewayFn != nil {
		return m.gatewayFn(ctx, id, upd)
	}
	return nil, nil
}

func (m *mockTransactionRepo) CreateBatch(ctx context.Context, txns []db_models.Transaction) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, txns)
	}
	return nil
}

type mockStudentRepo struct {
	findFn        func(ctx context.Context, ids []string) ([]db_models.Student, error)
	createBatchFn func(ctx context.Context, students []db_models.Student) error
}

func (m *mockStudentRepo) FindByStudentIDs(ctx context.Context, ids []string) ([]db_models.Student, error) {
	if m.findFn != nil {
		return m.findFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockStudentRepo) CreateBatch(ctx context.Context, students []db_models.Student) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, students)
	}
	return nil
}

type mockWebhookEventRepo struct {
	events []db_models.WebhookEvent
	err    error
}

func (m *mockWebhookEventRepo) Create(_ context.Context, ev *db_models.WebhookEvent) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, *ev)
	return nil
}

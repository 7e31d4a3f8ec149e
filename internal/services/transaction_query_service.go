package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"schoolpay/internal/models/db_models"
	"schoolpay/internal/models/response_models"
	"schoolpay/internal/query"
	"schoolpay/internal/repositories"
	"schoolpay/pkg/utils"
	"schoolpay/pkg/validation"
)

type TransactionQueryServiceInterface interface {
	ListTransactions(ctx context.Context, d query.Descriptor) (*response_models.TransactionPage, error)
	ListBySchool(ctx context.Context, schoolID, startDate, endDate string) ([]response_models.TransactionView, error)
	GetStatusByOrderID(ctx context.Context, customOrderID string) (*response_models.StatusResponse, error)
	GetByCollectID(ctx context.Context, collectID string) (*db_models.Transaction, error)
}

type TransactionQueryService struct {
	transactions repositories.TransactionRepository
	students     repositories.StudentRepository
	log          *zap.Logger
}

func NewTransactionQueryService(
	transactions repositories.TransactionRepository,
	students repositories.StudentRepository,
	log *zap.Logger,
) TransactionQueryServiceInterface {
	return &TransactionQueryService{
		transactions: transactions,
		students:     students,
		log:          log.Named("transaction_query"),
	}
}

// ListTransactions returns one page of student-linked transactions. Transactions whose
// student is unknown are excluded from both the page and the total.
func (s *TransactionQueryService) ListTransactions(ctx context.Context, d query.Descriptor) (*response_models.TransactionPage, error) {
	page := query.NormalizePage(d.Page)
	limit := query.NormalizeLimit(d.Limit)
	filter := query.And(d.Filter, query.StudentLinked{})

	total, err := s.transactions.Count(ctx, filter)
	if err != nil {
		return nil, utils.StoreFailure("count transactions", err)
	}

	result := &response_models.TransactionPage{
		Records:    []response_models.TransactionView{},
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}
	d.Page, d.Limit = page, limit
	skip := d.Skip()
	if int64(skip) >= total {
		return result, nil
	}

	txns, err := s.transactions.Find(ctx, filter, d.Sort, skip, limit)
	if err != nil {
		return nil, utils.StoreFailure("list transactions", err)
	}

	result.Records, err = s.joinStudents(ctx, txns, false)
	if err != nil {
		return nil, err
	}

	s.log.Debug("listed transactions",
		zap.Int("page", page),
		zap.Int("limit", limit),
		zap.Int("returned", len(result.Records)),
		zap.Int64("total", total))

	return result, nil
}

func (s *TransactionQueryService) ListBySchool(ctx context.Context, schoolID, startDate, endDate string) ([]response_models.TransactionView, error) {
	schoolID = strings.TrimSpace(schoolID)

	var problems []string
	if err := validation.Var("school_id", schoolID, "required,school_id"); err != nil {
		problems = append(problems, utils.Problems(err)...)
	}
	dr, dateProblems := query.ParseDateRange(startDate, endDate)
	problems = append(problems, dateProblems...)
	if len(problems) > 0 {
		return nil, utils.NewValidationError(problems...)
	}

	filters := []query.Filter{query.SchoolEquals{SchoolID: schoolID}, query.StudentLinked{}}
	if dr != nil {
		filters = append(filters, *dr)
	}

	txns, err := s.transactions.Find(ctx, query.And(filters...), query.DefaultSort, 0, 0)
	if err != nil {
		return nil, utils.StoreFailure("list school transactions", err)
	}
	return s.joinStudents(ctx, txns, true)
}

func (s *TransactionQueryService) GetStatusByOrderID(ctx context.Context, customOrderID string) (*response_models.StatusResponse, error) {
	customOrderID = strings.TrimSpace(customOrderID)
	if err := validation.Var("custom_order_id", customOrderID, "required,order_id"); err != nil {
		return nil, err
	}

	txn, err := s.transactions.GetByCustomOrderID(ctx, customOrderID)
	if err != nil {
		return nil, utils.StoreFailure("get transaction status", err)
	}
	if txn == nil {
		return nil, utils.NotFound("Transaction with custom_order_id %s not found.", customOrderID)
	}

	return &response_models.StatusResponse{
		CustomOrderID: txn.CustomOrderID,
		Status:        txn.Status,
	}, nil
}

func (s *TransactionQueryService) GetByCollectID(ctx context.Context, collectID string) (*db_models.Transaction, error) {
	collectID = strings.TrimSpace(collectID)
	if collectID == "" {
		return nil, utils.NewValidationError("collect_id is required.")
	}

	txn, err := s.transactions.GetByCollectID(ctx, collectID)
	if err != nil {
		return nil, utils.StoreFailure("get transaction", err)
	}
	if txn == nil {
		return nil, utils.NotFound("Transaction with collect_id %s not found.", collectID)
	}
	return txn, nil
}

// joinStudents resolves each transaction's student with one batched lookup and merges
// the contact fields in. Transactions without a student are dropped; with sameSchool
// the student must also belong to the transaction's school.
func (s *TransactionQueryService) joinStudents(ctx context.Context, txns []db_models.Transaction, sameSchool bool) ([]response_models.TransactionView, error) {
	views := make([]response_models.TransactionView, 0, len(txns))
	if len(txns) == 0 {
		return views, nil
	}

	seen := make(map[string]struct{}, len(txns))
	ids := make([]string, 0, len(txns))
	for _, t := range txns {
		if _, ok := seen[t.StudentID]; ok {
			continue
		}
		seen[t.StudentID] = struct{}{}
		ids = append(ids, t.StudentID)
	}

	students, err := s.students.FindByStudentIDs(ctx, ids)
	if err != nil {
		return nil, utils.StoreFailure("load students", err)
	}
	byID := make(map[string]db_models.Student, len(students))
	for _, st := range students {
		byID[st.StudentID] = st
	}

	dropped := 0
	for _, t := range txns {
		st, ok := byID[t.StudentID]
		if !ok || (sameSchool && st.SchoolID != t.SchoolID) {
			dropped++
			continue
		}
		views = append(views, response_models.NewTransactionView(t, st))
	}
	if dropped > 0 {
		s.log.Debug("dropped unlinked transactions", zap.Int("count", dropped))
	}
	return views, nil
}

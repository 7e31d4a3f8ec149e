package response_models

import (
	"time"

	"github.com/shopspring/decimal"
	"schoolpay/internal/models/db_models"
)

// TransactionView is a transaction denormalized with its student's contact fields.
type TransactionView struct {
	CollectID         string                      `json:"collect_id"`
	SchoolID          string                      `json:"school_id"`
	StudentID         string                      `json:"student_id"`
	Gateway           string                      `json:"gateway"`
	OrderAmount       decimal.Decimal             `json:"order_amount"`
	TransactionAmount decimal.Decimal             `json:"transaction_amount"`
	Status            db_models.TransactionStatus `json:"status"`
	CustomOrderID     string                      `json:"custom_order_id"`
	TransactionDate   time.Time                   `json:"transaction_date"`
	BankReference     string                      `json:"bank_reference"`
	Name              string                      `json:"name"`
	Email             string                      `json:"email"`
	Phone             string                      `json:"phone"`
}

func NewTransactionView(t db_models.Transaction, s db_models.Student) TransactionView {
	return TransactionView{
		CollectID:         t.CollectID,
		SchoolID:          t.SchoolID,
		StudentID:         t.StudentID,
		Gateway:           t.Gateway,
		OrderAmount:       t.OrderAmount,
		TransactionAmount: t.TransactionAmount,
		Status:            t.Status,
		CustomOrderID:     t.CustomOrderID,
		TransactionDate:   t.TransactionDate,
		BankReference:     t.BankReference,
		Name:              s.Name,
		Email:             s.Email,
		Phone:             s.Phone,
	}
}

type TransactionPage struct {
	Records    []TransactionView
	TotalCount int64
	Page       int
	Limit      int
}

func (p TransactionPage) TotalPages() int {
	if p.Limit <= 0 || p.TotalCount == 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Limit) - 1) / int64(p.Limit))
}

type StatusResponse struct {
	CustomOrderID string                      `json:"custom_order_id"`
	Status        db_models.TransactionStatus `json:"status"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
}

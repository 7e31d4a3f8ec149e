package db_models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TxnStatusPending TransactionStatus = "Pending"
	TxnStatusSuccess TransactionStatus = "Success"
	TxnStatusFailed  TransactionStatus = "Failed"
)

var TransactionStatuses = []TransactionStatus{TxnStatusPending, TxnStatusSuccess, TxnStatusFailed}

func (s TransactionStatus) Valid() bool {
	for _, v := range TransactionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Transaction struct {
	BaseModel
	CollectID         string            `gorm:"uniqueIndex;not null" json:"collect_id"`
	SchoolID          string            `gorm:"index;not null" json:"school_id"`
	StudentID         string            `gorm:"index;not null" json:"student_id"`
	Gateway           string            `json:"gateway"`
	OrderAmount       decimal.Decimal   `gorm:"type:numeric(14,2)" json:"order_amount"`
	TransactionAmount decimal.Decimal   `gorm:"type:numeric(14,2)" json:"transaction_amount"`
	Status            TransactionStatus `gorm:"type:varchar(16);index;not null" json:"status"`
	CustomOrderID     string            `gorm:"uniqueIndex;not null" json:"custom_order_id"`
	TransactionDate   time.Time         `gorm:"index;not null" json:"transaction_date"`
	BankReference     string            `json:"bank_reference"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = TxnStatusPending
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now()
	}
	t.TransactionDate = t.TransactionDate.UTC()
	return t.BaseModel.BeforeCreate(tx)
}

package request_models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ListTransactionsQuery holds the raw query string values; parsing happens in the query builder.
type ListTransactionsQuery struct {
	Page       string `form:"page"`
	Limit      string `form:"limit"`
	Status     string `form:"status"`
	SearchTerm string `form:"searchTerm"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
}

type SchoolTransactionsQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type ManualUpdateRequest struct {
	CustomOrderID string `json:"custom_order_id" validate:"required,order_id"`
	NewStatus     string `json:"new_status" validate:"required,txn_status"`
}

type OrderInfo struct {
	OrderID           string           `json:"order_id" validate:"required,order_id"`
	OrderAmount       *decimal.Decimal `json:"order_amount" validate:"required,amount"`
	TransactionAmount *decimal.Decimal `json:"transaction_amount" validate:"required,amount"`
	Gateway           string           `json:"gateway" validate:"required"`
	BankReference     string           `json:"bank_reference" validate:"required"`
}

// WebhookRequest keeps status raw so a non-numeric value can be told apart from a missing one.
type WebhookRequest struct {
	Status    json.RawMessage `json:"status" swaggertype:"integer"`
	OrderInfo *OrderInfo      `json:"order_info"`

	Raw []byte `json:"-"`
}

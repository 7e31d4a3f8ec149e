package query

import (
	"time"

	"schoolpay/internal/models/db_models"
)

// Filter is a node of the transaction filter descriptor. Repositories translate every
// node type below and reject anything else.
type Filter interface {
	filterNode()
}

type StatusEquals struct {
	Status db_models.TransactionStatus
}

// TextSearch matches Term as a literal, case-insensitive substring of collect_id or custom_order_id.
type TextSearch struct {
	Term string
}

// DateRange bounds transaction_date; both ends are inclusive and either may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

type SchoolEquals struct {
	SchoolID string
}

// StudentLinked keeps only transactions whose student_id resolves to a stored student.
type StudentLinked struct{}

// All matches when every child matches. An empty All matches everything.
type All []Filter

func (StatusEquals) filterNode()  {}
func (TextSearch) filterNode()    {}
func (DateRange) filterNode()     {}
func (SchoolEquals) filterNode()  {}
func (StudentLinked) filterNode() {}
func (All) filterNode()           {}

// And combines filters, dropping nils and flattening nested All nodes.
func And(filters ...Filter) Filter {
	out := make(All, 0, len(filters))
	for _, f := range filters {
		switch n := f.(type) {
		case nil:
		case All:
			if flat, ok := And(n...).(All); ok {
				out = append(out, flat...)
			}
		default:
			out = append(out, n)
		}
	}
	return out
}

type SortField string

const (
	SortByTransactionDate   SortField = "transaction_date"
	SortByOrderAmount       SortField = "order_amount"
	SortByTransactionAmount SortField = "transaction_amount"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByTransactionDate, SortByOrderAmount, SortByTransactionAmount:
		return true
	}
	return false
}

type Sort struct {
	Field      SortField
	Descending bool
}

var DefaultSort = Sort{Field: SortByTransactionDate, Descending: true}

// OrNormalized falls back to DefaultSort when the field is unset or unknown.
func (s Sort) OrNormalized() Sort {
	if !s.Field.Valid() {
		return DefaultSort
	}
	return s
}

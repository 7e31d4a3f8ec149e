package repositories

import (
	"errors"

	"github.com/shopspring/decimal"
	"schoolpay/internal/models/db_models"
)

// ErrDuplicateKey is returned when an insert collides with a unique key.
var ErrDuplicateKey = errors.New("duplicate key")

// GatewayUpdate is the set of fields a payment gateway callback overwrites.
type GatewayUpdate struct {
	Status            db_models.TransactionStatus
	OrderAmount       decimal.Decimal
	TransactionAmount decimal.Decimal
	Gateway           string
	BankReference     string
}

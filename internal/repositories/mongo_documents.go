package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"schoolpay/internal/models/db_models"
)

const (
	studentsCollection      = "students"
	transactionsCollection  = "transactions"
	webhookEventsCollection = "webhook_events"
)

// Amounts are written as Decimal128 but may have been stored as plain numbers by other
// writers, so they are decoded from the raw value.
type transactionDocument struct {
	ID                primitive.ObjectID          `bson:"_id,omitempty"`
	CollectID         string                      `bson:"collect_id"`
	SchoolID          string                      `bson:"school_id"`
	StudentID         string                      `bson:"student_id"`
	Gateway           string                      `bson:"gateway,omitempty"`
	OrderAmount       bson.RawValue               `bson:"order_amount"`
	TransactionAmount bson.RawValue               `bson:"transaction_amount"`
	Status            db_models.TransactionStatus `bson:"status"`
	CustomOrderID     string                      `bson:"custom_order_id"`
	TransactionDate   time.Time                   `bson:"transaction_date"`
	BankReference     string                      `bson:"bank_reference,omitempty"`
	CreatedAt         time.Time                   `bson:"createdAt"`
	UpdatedAt         time.Time                   `bson:"updatedAt"`
}

type studentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	StudentID string             `bson:"student_id"`
	Name      string             `bson:"name"`
	SchoolID  string             `bson:"school_id"`
	Class     string             `bson:"class"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Address   string             `bson:"address,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type webhookEventDocument struct {
	ID         primitive.ObjectID       `bson:"_id,omitempty"`
	OrderID    string                   `bson:"order_id"`
	StatusCode string                   `bson:"status_code"`
	Payload    string                   `bson:"payload"`
	Outcome    db_models.WebhookOutcome `bson:"outcome"`
	Error      string                   `bson:"error,omitempty"`
	ReceivedAt time.Time                `bson:"received_at"`
}

// objectUUID derives a stable uuid from an ObjectID so API payloads keep one id shape.
func objectUUID(id primitive.ObjectID) uuid.UUID {
	if id.IsZero() {
		return uuid.Nil
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, id[:])
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func decimalValue(d decimal.Decimal) (bson.RawValue, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return bson.RawValue{}, err
	}
	t, data, err := bson.MarshalValue(d128)
	if err != nil {
		return bson.RawValue{}, err
	}
	return bson.RawValue{Type: t, Value: data}, nil
}

func decimalFromValue(v bson.RawValue) decimal.Decimal {
	switch v.Type {
	case bsontype.Decimal128:
		if d, err := decimal.NewFromString(v.Decimal128().String()); err == nil {
			return d
		}
	case bsontype.Double:
		return decimal.NewFromFloat(v.Double())
	case bsontype.Int32:
		return decimal.NewFromInt32(v.Int32())
	case bsontype.Int64:
		return decimal.NewFromInt(v.Int64())
	case bsontype.String:
		if d, err := decimal.NewFromString(v.StringValue()); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func (d transactionDocument) model() db_models.Transaction {
	return db_models.Transaction{
		BaseModel: db_models.BaseModel{
			ID:        objectUUID(d.ID),
			CreatedAt: unixOrZero(d.CreatedAt),
			UpdatedAt: unixOrZero(d.UpdatedAt),
		},
		CollectID:         d.CollectID,
		SchoolID:          d.SchoolID,
		StudentID:         d.StudentID,
		Gateway:           d.Gateway,
		OrderAmount:       decimalFromValue(d.OrderAmount),
		TransactionAmount: decimalFromValue(d.TransactionAmount),
		Status:            d.Status,
		CustomOrderID:     d.CustomOrderID,
		TransactionDate:   d.TransactionDate.UTC(),
		BankReference:     d.BankReference,
	}
}

func newTransactionDocument(t db_models.Transaction, now time.Time) (transactionDocument, error) {
	orderAmount, err := decimalValue(t.OrderAmount)
	if err != nil {
		return transactionDocument{}, err
	}
	txnAmount, err := decimalValue(t.TransactionAmount)
	if err != nil {
		return transactionDocument{}, err
	}
	status := t.Status
	if status == "" {
		status = db_models.TxnStatusPending
	}
	date := t.TransactionDate
	if date.IsZero() {
		date = now
	}
	return transactionDocument{
		CollectID:         t.CollectID,
		SchoolID:          t.SchoolID,
		StudentID:         t.StudentID,
		Gateway:           t.Gateway,
		OrderAmount:       orderAmount,
		TransactionAmount: txnAmount,
		Status:            status,
		CustomOrderID:     t.CustomOrderID,
		TransactionDate:   date.UTC(),
		BankReference:     t.BankReference,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (d studentDocument) model() db_models.Student {
	return db_models.Student{
		BaseModel: db_models.BaseModel{
			ID:        objectUUID(d.ID),
			CreatedAt: unixOrZero(d.CreatedAt),
			UpdatedAt: unixOrZero(d.UpdatedAt),
		},
		StudentID: d.StudentID,
		Name:      d.Name,
		SchoolID:  d.SchoolID,
		Class:     d.Class,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
	}
}

func newStudentDocument(s db_models.Student, now time.Time) studentDocument {
	return studentDocument{
		StudentID: s.StudentID,
		Name:      s.Name,
		SchoolID:  s.SchoolID,
		Class:     s.Class,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

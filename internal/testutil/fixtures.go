package testutil

import (
	"time"

	"github.com/shopspring/decimal"
	"schoolpay/internal/models/db_models"
)

// MakeStudent returns a student with sensible defaults.
func MakeStudent(studentID, schoolID string) *db_models.Student {
	return &db_models.Student{
		StudentID: studentID,
		Name:      "Student " + studentID,
		SchoolID:  schoolID,
		Class:     "5A",
		Email:     studentID + "@school.test",
		Phone:     "555-" + studentID,
	}
}

// MakeTransaction returns a Pending transaction dated at the given UTC day and hour.
func MakeTransaction(collectID, customOrderID, studentID, schoolID string, date time.Time) *db_models.Transaction {
	return &db_models.Transaction{
		CollectID:         collectID,
		CustomOrderID:     customOrderID,
		StudentID:         studentID,
		SchoolID:          schoolID,
		Gateway:           "PhonePe",
		OrderAmount:       decimal.NewFromInt(2000),
		TransactionAmount: decimal.NewFromInt(2000),
		Status:            db_models.TxnStatusPending,
		TransactionDate:   date,
		BankReference:     "BANK-" + collectID,
	}
}

func Day(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

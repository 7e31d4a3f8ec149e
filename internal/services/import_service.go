package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"schoolpay/internal/models/db_models"
	"schoolpay/internal/repositories"
	"schoolpay/pkg/utils"
	"schoolpay/pkg/validation"
)

var (
	studentColumns     = []string{"student_id", "name", "school_id", "class", "email", "phone"}
	transactionColumns = []string{"collect_id", "school_id", "student_id", "custom_order_id"}
)

type ImportServiceInterface interface {
	ImportStudents(ctx context.Context, r io.Reader) (int, error)
	ImportTransactions(ctx context.Context, r io.Reader) (int, error)
}

type ImportService struct {
	students     repositories.StudentRepository
	transactions repositories.TransactionRepository
	log          *zap.Logger
}

func NewImportService(
	students repositories.StudentRepository,
	transactions repositories.TransactionRepository,
	log *zap.Logger,
) ImportServiceInterface {
	return &ImportService{
		students:     students,
		transactions: transactions,
		log:          log.Named("import"),
	}
}

// ImportStudents bulk-inserts students from a CSV with a header row. Nothing is stored
// unless every row is valid.
func (s *ImportService) ImportStudents(ctx context.Context, r io.Reader) (int, error) {
	rows, err := readCSV(r, studentColumns)
	if err != nil {
		return 0, err
	}

	var problems []string
	students := make([]db_models.Student, 0, len(rows))
	for _, row := range rows {
		if missing := row.missing(studentColumns); len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("Row %d: missing %s.", row.line, strings.Join(missing, ", ")))
			continue
		}
		if school := row.get("school_id"); !validation.IsSchoolID(school) {
			problems = append(problems, fmt.Sprintf("Row %d: invalid school_id '%s'.", row.line, school))
			continue
		}
		students = append(students, db_models.Student{
			StudentID: row.get("student_id"),
			Name:      row.get("name"),
			SchoolID:  row.get("school_id"),
			Class:     row.get("class"),
			Email:     row.get("email"),
			Phone:     row.get("phone"),
			Address:   row.get("address"),
		})
	}
	if len(problems) > 0 {
		return 0, utils.NewValidationError(problems...)
	}

	if err := s.students.CreateBatch(ctx, students); err != nil {
		return 0, s.insertError("students", err)
	}
	s.log.Info("imported students", zap.Int("count", len(students)))
	return len(students), nil
}

// ImportTransactions bulk-inserts transactions from a CSV with a header row. A blank
// status defaults to Pending and a blank transaction_date to the import time.
func (s *ImportService) ImportTransactions(ctx context.Context, r io.Reader) (int, error) {
	rows, err := readCSV(r, transactionColumns)
	if err != nil {
		return 0, err
	}

	var problems []string
	txns := make([]db_models.Transaction, 0, len(rows))
	for _, row := range rows {
		txn, rowProblems := row.transaction()
		if len(rowProblems) > 0 {
			problems = append(problems, fmt.Sprintf("Row %d: %s", row.line, strings.Join(rowProblems, " ")))
			continue
		}
		txns = append(txns, txn)
	}
	if len(problems) > 0 {
		return 0, utils.NewValidationError(problems...)
	}

	if err := s.transactions.CreateBatch(ctx, txns); err != nil {
		return 0, s.insertError("transactions", err)
	}
	s.log.Info("imported transactions", zap.Int("count", len(txns)))
	return len(txns), nil
}

func (s *ImportService) insertError(what string, err error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return utils.NewValidationError(fmt.Sprintf("Import contains %s that already exist.", what))
	}
	return utils.StoreFailure("import "+what, err)
}

type csvRow struct {
	line   int
	values map[string]string
}

func (r csvRow) get(col string) string { return r.values[col] }

func (r csvRow) missing(cols []string) []string {
	var out []string
	for _, c := range cols {
		if r.values[c] == "" {
			out = append(out, c)
		}
	}
	return out
}

func (r csvRow) transaction() (db_models.Transaction, []string) {
	var problems []string
	if missing := r.missing(transactionColumns); len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("missing %s.", strings.Join(missing, ", ")))
	}

	txn := db_models.Transaction{
		CollectID:     r.get("collect_id"),
		SchoolID:      r.get("school_id"),
		StudentID:     r.get("student_id"),
		CustomOrderID: r.get("custom_order_id"),
		Gateway:       r.get("gateway"),
		BankReference: r.get("bank_reference"),
	}

	if txn.CustomOrderID != "" && !validation.IsOrderID(txn.CustomOrderID) {
		problems = append(problems, fmt.Sprintf("invalid custom_order_id '%s'.", txn.CustomOrderID))
	}
	if txn.SchoolID != "" && !validation.IsSchoolID(txn.SchoolID) {
		problems = append(problems, fmt.Sprintf("invalid school_id '%s'.", txn.SchoolID))
	}

	for _, col := range []string{"order_amount", "transaction_amount"} {
		raw := r.get(col)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || !validation.IsAmount(d) {
			problems = append(problems, fmt.Sprintf("invalid %s '%s'.", col, raw))
			continue
		}
		if col == "order_amount" {
			txn.OrderAmount = d
		} else {
			txn.TransactionAmount = d
		}
	}

	if raw := r.get("status"); raw != "" {
		txn.Status = db_models.TransactionStatus(raw)
		if !txn.Status.Valid() {
			problems = append(problems, fmt.Sprintf("invalid status '%s'.", raw))
		}
	}

	if raw := r.get("transaction_date"); raw != "" {
		t, _, err := utils.ParseDate(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid transaction_date '%s'.", raw))
		} else {
			txn.TransactionDate = t
		}
	}

	return txn, problems
}

// readCSV maps each record onto the header row. Headers are matched case-insensitively
// and every required column must be present.
func readCSV(r io.Reader, required []string) ([]csvRow, error) {
	if r == nil {
		return nil, utils.NewValidationError("CSV file is required.")
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, utils.NewValidationError("CSV file is empty.")
	}
	if err != nil {
		return nil, utils.NewValidationError(fmt.Sprintf("Invalid CSV header: %v", err))
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var missing []string
	for _, col := range required {
		found := false
		for _, h := range header {
			if h == col {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, utils.NewValidationError("CSV header is missing columns: " + strings.Join(missing, ", "))
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, utils.NewValidationError(fmt.Sprintf("Invalid CSV: %v", err))
		}
		line, _ := reader.FieldPos(0)

		values := make(map[string]string, len(header))
		blank := true
		for i, h := range header {
			if i < len(record) {
				values[h] = strings.TrimSpace(record[i])
				if values[h] != "" {
					blank = false
				}
			}
		}
		if blank {
			continue
		}
		rows = append(rows, csvRow{line: line, values: values})
	}

	if len(rows) == 0 {
		return nil, utils.NewValidationError("CSV file has no data rows.")
	}
	return rows, nil
}

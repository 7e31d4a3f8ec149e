package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"schoolpay/internal/models/db_models"
	"schoolpay/internal/repositories"
	"schoolpay/internal/testutil"
	"schoolpay/pkg/utils"
)

const studentsCSV = `student_id,name,school_id,class,email,phone,address
STU001,Asha Rao,SCH001,5A,asha@school.test,555-0101,12 Lake Road
STU002,Ravi Iyer,SCH001,6B,ravi@school.test,555-0102,

STU003,Meera Das,SCH002,4C,meera@school.test,555-0103,"Flat 3, Hill View"
`

const transactionsCSV = `Collect_ID,school_id,student_id,gateway,order_amount,transaction_amount,status,custom_order_id,transaction_date,bank_reference
COL-1,SCH001,STU001,PhonePe,2000,2000,Success,ORD1001,2024-01-05T10:00:00Z,HDFC-1
COL-2,SCH001,STU002,Razorpay,1500.50,1510.75,,ORD1002,2024-01-06,
`

func TestImportStudentsAndTransactions(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewImportService(repositories.NewStudentRepository(db), repositories.NewTransactionRepository(db), zap.NewNop())
	ctx := context.Background()

	n, err := svc.ImportStudents(ctx, strings.NewReader(studentsCSV))
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d students, want 3", n)
	}

	var meera db_models.Student
	if err := db.Where("student_id = ?", "STU003").First(&meera).Error; err != nil {
		t.Fatalf("load student: %v", err)
	}
	if meera.Address != "Flat 3, Hill View" || meera.SchoolID != "SCH002" {
		t.Errorf("student = %+v", meera)
	}

	n, err = svc.ImportTransactions(ctx, strings.NewReader(transactionsCSV))
	if err != nil {
		t.Fatalf("ImportTransactions: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d transactions, want 2", n)
	}

	var second db_models.Transaction
	if err := db.Where("collect_id = ?", "COL-2").First(&second).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if second.Status != db_models.TxnStatusPending {
		t.Errorf("blank status imported as %q, want Pending", second.Status)
	}
	if !second.OrderAmount.Equal(decimal.RequireFromString("1500.50")) {
		t.Errorf("order amount = %s", second.OrderAmount)
	}

	queries := newQueryService(db)
	status, err := queries.GetStatusByOrderID(ctx, "ORD1001")
	if err != nil || status.Status != db_models.TxnStatusSuccess {
		t.Errorf("imported status lookup: %+v, %v", status, err)
	}
}

func TestImportDuplicatesAreRejected(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc := NewImportService(repositories.NewStudentRepository(db), repositories.NewTransactionRepository(db), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.ImportStudents(ctx, strings.NewReader(studentsCSV)); err != nil {
		t.Fatalf("first import: %v", err)
	}
	_, err := svc.ImportStudents(ctx, strings.NewReader(studentsCSV))
	if !errors.Is(err, utils.ErrValidation) {
		t.Fatalf("expected validation error on re-import, got %v", err)
	}

	var n int64
	db.Model(&db_models.Student{}).Count(&n)
	if n != 3 {
		t.Errorf("stored %d students after failed re-import, want 3", n)
	}
}

func TestImportRejectsBadInput(t *testing.T) {
	svc := NewImportService(&mockStudentRepo{
		createBatchFn: func(context.Context, []db_models.Student) error {
			t.Fatal("store must not be called for invalid input")
			return nil
		},
	}, &mockTransactionRepo{
		createBatchFn: func(context.Context, []db_models.Transaction) error {
			t.Fatal("store must not be called for invalid input")
			return nil
		},
	}, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(string) (int, error)
		csv  string
		want string
	}{
		{
			name: "empty file",
			run:  func(s string) (int, error) { return svc.ImportStudents(ctx, strings.NewReader(s)) },
			csv:  "",
			want: "CSV file is empty.",
		},
		{
			name: "header only",
			run:  func(s string) (int, error) { return svc.ImportStudents(ctx, strings.NewReader(s)) },
			csv:  "student_id,name,school_id,class,email,phone\n",
			want: "CSV file has no data rows.",
		},
		{
			name: "missing column",
			run:  func(s string) (int, error) { return svc.ImportStudents(ctx, strings.NewReader(s)) },
			csv:  "student_id,name\nSTU001,Asha\n",
			want: "CSV header is missing columns: school_id, class, email, phone",
		},
		{
			name: "blank required cell",
			run:  func(s string) (int, error) { return svc.ImportStudents(ctx, strings.NewReader(s)) },
			csv:  "student_id,name,school_id,class,email,phone\nSTU001,,SCH001,5A,a@b.c,1\n",
			want: "Row 2: missing name.",
		},
		{
			name: "student with malformed school id",
			run:  func(s string) (int, error) { return svc.ImportStudents(ctx, strings.NewReader(s)) },
			csv:  "student_id,name,school_id,class,email,phone\nSTU001,Asha,SCHOOL1,5A,a@b.c,1\n",
			want: "Row 2: invalid school_id 'SCHOOL1'.",
		},
		{
			name: "unreachable order id",
			run:  func(s string) (int, error) { return svc.ImportTransactions(ctx, strings.NewReader(s)) },
			csv:  "collect_id,school_id,student_id,custom_order_id\nCOL-1,SCH001,STU001,ORDX1\n",
			want: "Row 2: invalid custom_order_id 'ORDX1'.",
		},
		{
			name: "short order id and bad school",
			run:  func(s string) (int, error) { return svc.ImportTransactions(ctx, strings.NewReader(s)) },
			csv:  "collect_id,school_id,student_id,custom_order_id\nCOL-1,SCH1,STU001,ORD12\n",
			want: "Row 2: invalid custom_order_id 'ORD12'. invalid school_id 'SCH1'.",
		},
		{
			name: "bad amount and status",
			run:  func(s string) (int, error) { return svc.ImportTransactions(ctx, strings.NewReader(s)) },
			csv:  "collect_id,school_id,student_id,custom_order_id,order_amount,status\nCOL-1,SCH001,STU001,ORD1001,abc,Done\n",
			want: "Row 2: invalid order_amount 'abc'. invalid status 'Done'.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.run(tt.csv)
			if !errors.Is(err, utils.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestImportStoreFailure(t *testing.T) {
	svc := NewImportService(&mockStudentRepo{
		createBatchFn: func(context.Context, []db_models.Student) error { return errStoreDown },
	}, &mockTransactionRepo{}, zap.NewNop())

	_, err := svc.ImportStudents(context.Background(), strings.NewReader(studentsCSV))
	if !errors.Is(err, utils.ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

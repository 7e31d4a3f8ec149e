package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"schoolpay/internal/config"
	"schoolpay/internal/models/db_models"
	"schoolpay/internal/models/request_models"
	"schoolpay/internal/models/response_models"
	"schoolpay/internal/query"
	"schoolpay/pkg/middleware"
	"schoolpay/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockQueryService struct {
	listFn      func(ctx context.Context, d query.Descriptor) (*response_models.TransactionPage, error)
	bySchoolFn  func(ctx context.Context, schoolID, start, end string) ([]response_models.TransactionView, error)
	statusFn    func(ctx context.Context, id string) (*response_models.StatusResponse, error)
	byCollectFn func(ctx context.Context, id string) (*db_models.Transaction, error)
}

func (m *mockQueryService) ListTransactions(ctx context.Context, d query.Descriptor) (*response_models.TransactionPage, error) {
	return m.listFn(ctx, d)
}

func (m *mockQueryService) ListBySchool(ctx context.Context, schoolID, start, end string) ([]response_models.TransactionView, error) {
	return m.bySchoolFn(ctx, schoolID, start, end)
}

func (m *mockQueryService) GetStatusByOrderID(ctx context.Context, id string) (*response_models.StatusResponse, error) {
	return m.statusFn(ctx, id)
}

func (m *mockQueryService) GetByCollectID(ctx context.Context, id string) (*db_models.Transaction, error) {
	return m.byCollectFn(ctx, id)
}

type mockUpdateService struct {
	manualFn  func(ctx context.Context, req request_models.ManualUpdateRequest) (*db_models.Transaction, error)
	webhookFn func(ctx context.Context, req request_models.WebhookRequest) (*db_models.Transaction, error)
	rejectFn  func(ctx context.Context, body []byte, reason error)
}

func (m *mockUpdateService) ManualUpdate(ctx context.Context, req request_models.ManualUpdateRequest) (*db_models.Transaction, error) {
	return m.manualFn(ctx, req)
}

func (m *mockUpdateService) WebhookUpdate(ctx context.Context, req request_models.WebhookRequest) (*db_models.Transaction, error) {
	return m.webhookFn(ctx, req)
}

func (m *mockUpdateService) RecordRejectedWebhook(ctx context.Context, body []byte, reason error) {
	if m.rejectFn != nil {
		m.rejectFn(ctx, body, reason)
	}
}

type mockImportService struct {
	studentsFn func(ctx context.Context, r io.Reader) (int, error)
}

func (m *mockImportService) ImportStudents(ctx context.Context, r io.Reader) (int, error) {
	return m.studentsFn(ctx, r)
}

func (m *mockImportService) ImportTransactions(ctx context.Context, r io.Reader) (int, error) {
	return 0, errors.New("not used")
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newRouter(expose bool, register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	if expose {
		r.Use(middleware.ExposeErrors())
	}
	register(r)
	return r
}

func do(r http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return out
}

func transactionRouter(q *mockQueryService, u *mockUpdateService, expose bool) *gin.Engine {
	tc := NewTransactionController(q, u)
	wc := NewWebhookController(u)
	return newRouter(expose, func(r *gin.Engine) {
		r.GET("/api/transactions", tc.ListTransactions)
		r.GET("/api/transactions/school/:school_id", tc.ListBySchool)
		r.GET("/api/transactions/check-status/:custom_order_id", tc.CheckStatus)
		r.GET("/api/transactions/collect/:collect_id", tc.GetByCollectID)
		r.POST("/api/transactions/manual-update", tc.ManualUpdate)
		r.POST("/api/webhook/transaction-status", wc.TransactionStatus)
	})
}

func TestListTransactionsEnvelope(t *testing.T) {
	var got query.Descriptor
	q := &mockQueryService{listFn: func(_ context.Context, d query.Descriptor) (*response_models.TransactionPage, error) {
		got = d
		return &response_models.TransactionPage{
			Records:    []response_models.TransactionView{{CollectID: "COL-1", Name: "Asha"}},
			TotalCount: 21,
			Page:       d.Page,
			Limit:      d.Limit,
		}, nil
	}}
	r := transactionRouter(q, &mockUpdateService{}, false)

	w := do(r, http.MethodGet, "/api/transactions?page=3&limit=10&status=Success&searchTerm=col", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["message"] != "Transactions fetched successfully." {
		t.Errorf("message = %v", body["message"])
	}
	if body["page"] != float64(3) || body["totalPages"] != float64(3) || body["totalRecords"] != float64(21) {
		t.Errorf("paging fields = %v/%v/%v", body["page"], body["totalPages"], body["totalRecords"])
	}
	if data, ok := body["data"].([]interface{}); !ok || len(data) != 1 {
		t.Errorf("data = %v", body["data"])
	}
	if body["trace_id"] == "" || w.Header().Get(middleware.TraceIDHeader) == "" {
		t.Error("trace id missing")
	}
	if got.Page != 3 || got.Limit != 10 {
		t.Errorf("descriptor page/limit = %d/%d", got.Page, got.Limit)
	}
}

func TestListTransactionsEmptyIsOK(t *testing.T) {
	q := &mockQueryService{listFn: func(_ context.Context, d query.Descriptor) (*response_models.TransactionPage, error) {
		return &response_models.TransactionPage{Records: []response_models.TransactionView{}, Page: d.Page, Limit: d.Limit}, nil
	}}
	w := do(transactionRouter(q, &mockUpdateService{}, false), http.MethodGet, "/api/transactions", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["message"] != "No transactions found matching your criteria." || body["totalPages"] != float64(0) {
		t.Errorf("body = %v", body)
	}
	if data, ok := body["data"].([]interface{}); !ok || len(data) != 0 {
		t.Errorf("data should be an empty array, got %v", body["data"])
	}
}

func TestListTransactionsRejectsBadParams(t *testing.T) {
	q := &mockQueryService{listFn: func(context.Context, query.Descriptor) (*response_models.TransactionPage, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	w := do(transactionRouter(q, &mockUpdateService{}, false), http.MethodGet, "/api/transactions?page=0&endDate=soon", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "Page must be a positive integer.") || !strings.Contains(msg, "Invalid endDate format") {
		t.Errorf("message = %q", msg)
	}
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expose bool
		code   int
		detail bool
	}{
		{name: "validation", err: utils.NewValidationError("Invalid school_id format."), code: http.StatusBadRequest},
		{name: "not found", err: utils.NotFound("missing"), code: http.StatusNotFound},
		{name: "store hidden", err: utils.StoreFailure("list", errors.New("dial tcp: refused")), code: http.StatusInternalServerError},
		{name: "store exposed", err: utils.StoreFailure("list", errors.New("dial tcp: refused")), expose: true, code: http.StatusInternalServerError, detail: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &mockQueryService{bySchoolFn: func(context.Context, string, string, string) ([]response_models.TransactionView, error) {
				return nil, tt.err
			}}
			w := do(transactionRouter(q, &mockUpdateService{}, tt.expose), http.MethodGet, "/api/transactions/school/SCH001", nil, "")
			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d", w.Code, tt.code)
			}
			body := decode(t, w)
			data, _ := body["data"].(map[string]interface{})
			_, hasDetail := data["error"]
			if hasDetail != tt.detail {
				t.Errorf("error detail present = %v, want %v (body %v)", hasDetail, tt.detail, body)
			}
		})
	}
}

func TestListBySchoolPassesDates(t *testing.T) {
	q := &mockQueryService{bySchoolFn: func(_ context.Context, schoolID, start, end string) ([]response_models.TransactionView, error) {
		if schoolID != "SCH002" || start != "2024-01-01" || end != "2024-01-31" {
			t.Errorf("got %s %s %s", schoolID, start, end)
		}
		return []response_models.TransactionView{}, nil
	}}
	w := do(transactionRouter(q, &mockUpdateService{}, false), http.MethodGet,
		"/api/transactions/school/SCH002?startDate=2024-01-01&endDate=2024-01-31", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCheckStatus(t *testing.T) {
	q := &mockQueryService{statusFn: func(_ context.Context, id string) (*response_models.StatusResponse, error) {
		if id == "ORD1234" {
			return &response_models.StatusResponse{CustomOrderID: id, Status: db_models.TxnStatusSuccess}, nil
		}
		return nil, utils.NotFound("Transaction with custom_order_id %s not found.", id)
	}}
	r := transactionRouter(q, &mockUpdateService{}, false)

	w := do(r, http.MethodGet, "/api/transactions/check-status/ORD1234", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data := decode(t, w)["data"].(map[string]interface{})
	if data["status"] != "Success" {
		t.Errorf("data = %v", data)
	}

	if w := do(r, http.MethodGet, "/api/transactions/check-status/ORD9999", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown order status = %d, want 404", w.Code)
	}
}

func TestManualUpdateEndpoint(t *testing.T) {
	u := &mockUpdateService{manualFn: func(_ context.Context, req request_models.ManualUpdateRequest) (*db_models.Transaction, error) {
		if req.CustomOrderID != "ORD1234" || req.NewStatus != "Failed" {
			t.Errorf("request = %+v", req)
		}
		return &db_models.Transaction{CustomOrderID: req.CustomOrderID, Status: db_models.TxnStatusFailed}, nil
	}}
	r := transactionRouter(&mockQueryService{}, u, false)

	w := do(r, http.MethodPost, "/api/transactions/manual-update",
		strings.NewReader(`{"custom_order_id":"ORD1234","new_status":"Failed"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/transactions/manual-update", strings.NewReader(`{not json`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}
}

func TestWebhookEndpointKeepsRawBody(t *testing.T) {
	payload := `{"status":200,"order_info":{"order_id":"ORD7001","order_amount":2000,"transaction_amount":2200,"gateway":"PhonePe","bank_reference":"YESBNK222"}}`
	u := &mockUpdateService{webhookFn: func(_ context.Context, req request_models.WebhookRequest) (*db_models.Transaction, error) {
		if string(req.Status) != "200" {
			t.Errorf("status = %s", req.Status)
		}
		if req.OrderInfo == nil || req.OrderInfo.OrderID != "ORD7001" || req.OrderInfo.OrderAmount.String() != "2000" {
			t.Errorf("order info = %+v", req.OrderInfo)
		}
		if string(req.Raw) != payload {
			t.Errorf("raw body not preserved: %s", req.Raw)
		}
		return &db_models.Transaction{CollectID: "ORD7001", Status: db_models.TxnStatusSuccess}, nil
	}}
	r := transactionRouter(&mockQueryService{}, u, false)

	w := do(r, http.MethodPost, "/api/webhook/transaction-status", strings.NewReader(payload), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/webhook/transaction-status", strings.NewReader(`[1,2]`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-object body status = %d, want 400", w.Code)
	}
}

func TestWebhookEndpointRecordsUndecodableBody(t *testing.T) {
	var (
		rejected []string
		reasons  []error
	)
	u := &mockUpdateService{
		webhookFn: func(context.Context, request_models.WebhookRequest) (*db_models.Transaction, error) {
			t.Fatal("WebhookUpdate must not run for an undecodable body")
			return nil, nil
		},
		rejectFn: func(_ context.Context, body []byte, reason error) {
			rejected = append(rejected, string(body))
			reasons = append(reasons, reason)
		},
	}
	r := transactionRouter(&mockQueryService{}, u, false)

	for _, body := range []string{`{"status":200,`, `[1,2]`} {
		w := do(r, http.MethodPost, "/api/webhook/transaction-status", strings.NewReader(body), "application/json")
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
	if len(rejected) != 2 || rejected[0] != `{"status":200,` || rejected[1] != `[1,2]` {
		t.Errorf("rejected bodies = %q", rejected)
	}
	for _, err := range reasons {
		if !errors.Is(err, utils.ErrValidation) {
			t.Errorf("reason = %v, want validation error", err)
		}
	}
}

func importRouter(svc *mockImportService, studentsPath string) *gin.Engine {
	ic := NewImportController(svc, config.Config{Import: config.ImportConfig{StudentsPath: studentsPath}})
	return newRouter(false, func(r *gin.Engine) {
		r.POST("/api/import/students", ic.ImportStudents)
	})
}

func TestImportUsesUploadedFile(t *testing.T) {
	svc := &mockImportService{studentsFn: func(_ context.Context, r io.Reader) (int, error) {
		b, _ := io.ReadAll(r)
		if string(b) != "student_id\nSTU001\n" {
			t.Errorf("uploaded content = %q", b)
		}
		return 1, nil
	}}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "students.csv")
	_, _ = fw.Write([]byte("student_id\nSTU001\n"))
	_ = mw.Close()

	w := do(importRouter(svc, ""), http.MethodPost, "/api/import/students", &buf, mw.FormDataContentType())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	data := decode(t, w)["data"].(map[string]interface{})
	if data["imported"] != float64(1) {
		t.Errorf("data = %v", data)
	}
}

func TestImportFallsBackToDefaultPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student.csv")
	if err := os.WriteFile(path, []byte("from disk"), 0o600); err != nil {
		t.Fatal(err)
	}
	svc := &mockImportService{studentsFn: func(_ context.Context, r io.Reader) (int, error) {
		b, _ := io.ReadAll(r)
		if string(b) != "from disk" {
			t.Errorf("content = %q", b)
		}
		return 2, nil
	}}

	if w := do(importRouter(svc, path), http.MethodPost, "/api/import/students", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	missing := importRouter(svc, filepath.Join(t.TempDir(), "nope.csv"))
	if w := do(missing, http.MethodPost, "/api/import/students", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("missing default file status = %d, want 400", w.Code)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name string
		ping pingerFunc
		code int
	}{
		{name: "up", ping: func(context.Context) error { return nil }, code: http.StatusOK},
		{name: "down", ping: func(context.Context) error { return errors.New("timeout") }, code: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthController(tt.ping, zap.NewNop())
			r := newRouter(false, func(r *gin.Engine) { r.GET("/health", hc.Health) })
			if w := do(r, http.MethodGet, "/health", nil, ""); w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
		})
	}
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
	"schoolpay/internal/models/db_models"
	"schoolpay/internal/models/request_models"
	"schoolpay/internal/repositories"
	"schoolpay/pkg/utils"
	"schoolpay/pkg/validation"
)

// GatewayStatusOK is the only gateway status code treated as a successful payment.
const GatewayStatusOK = 200

type StatusUpdateServiceInterface interface {
	ManualUpdate(ctx context.Context, req request_models.ManualUpdateRequest) (*db_models.Transaction, error)
	WebhookUpdate(ctx context.Context, req request_models.WebhookRequest) (*db_models.Transaction, error)
	RecordRejectedWebhook(ctx context.Context, body []byte, reason error)
}

type StatusUpdateService struct {
	transactions repositories.TransactionRepository
	events       repositories.WebhookEventRepository
	log          *zap.Logger
}

func NewStatusUpdateService(
	transactions repositories.TransactionRepository,
	events repositories.WebhookEventRepository,
	log *zap.Logger,
) StatusUpdateServiceInterface {
	return &StatusUpdateService{
		transactions: transactions,
		events:       events,
		log:          log.Named("status_update"),
	}
}

func (s *StatusUpdateService) ManualUpdate(ctx context.Context, req request_models.ManualUpdateRequest) (*db_models.Transaction, error) {
	req.CustomOrderID = strings.TrimSpace(req.CustomOrderID)
	req.NewStatus = strings.TrimSpace(req.NewStatus)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	txn, err := s.transactions.UpdateStatusByCustomOrderID(ctx, req.CustomOrderID, db_models.TransactionStatus(req.NewStatus))
	if err != nil {
		return nil, utils.StoreFailure("update transaction status", err)
	}
	if txn == nil {
		return nil, utils.NotFound("Transaction with custom_order_id %s not found.", req.CustomOrderID)
	}

	s.log.Info("manual status update",
		zap.String("custom_order_id", txn.CustomOrderID),
		zap.String("status", string(txn.Status)))
	return txn, nil
}

// WebhookUpdate applies a gateway callback to the transaction whose collect_id equals
// order_info.order_id. Replays simply overwrite. Every call is recorded in the webhook
// event log; a failure to record is logged and otherwise ignored.
func (s *StatusUpdateService) WebhookUpdate(ctx context.Context, req request_models.WebhookRequest) (*db_models.Transaction, error) {
	event := &db_models.WebhookEvent{
		StatusCode: string(bytes.TrimSpace(req.Status)),
		Payload:    webhookPayload(req),
	}
	if req.OrderInfo != nil {
		event.OrderID = strings.TrimSpace(req.OrderInfo.OrderID)
	}

	txn, err := s.applyWebhook(ctx, req)

	switch {
	case err == nil:
		event.Outcome = db_models.WebhookOutcomeUpdated
	case errors.Is(err, utils.ErrValidation):
		event.Outcome = db_models.WebhookOutcomeRejected
		event.Error = err.Error()
	case errors.Is(err, utils.ErrNotFound):
		event.Outcome = db_models.WebhookOutcomeNotFound
		event.Error = err.Error()
	default:
		event.Outcome = db_models.WebhookOutcomeError
		event.Error = err.Error()
	}
	s.recordEvent(ctx, event)

	if err != nil {
		return nil, err
	}
	s.log.Info("webhook status update",
		zap.String("collect_id", txn.CollectID),
		zap.String("status", string(txn.Status)),
		zap.String("gateway", txn.Gateway))
	return txn, nil
}

// RecordRejectedWebhook logs a callback whose body could not be decoded at all.
func (s *StatusUpdateService) RecordRejectedWebhook(ctx context.Context, body []byte, reason error) {
	event := &db_models.WebhookEvent{
		Payload: rawPayload(body),
		Outcome: db_models.WebhookOutcomeRejected,
	}
	if reason != nil {
		event.Error = reason.Error()
	}
	s.recordEvent(ctx, event)
}

func (s *StatusUpdateService) applyWebhook(ctx context.Context, req request_models.WebhookRequest) (*db_models.Transaction, error) {
	info := request_models.OrderInfo{}
	if req.OrderInfo != nil {
		info = *req.OrderInfo
	}
	info.OrderID = strings.TrimSpace(info.OrderID)
	info.Gateway = strings.TrimSpace(info.Gateway)
	info.BankReference = strings.TrimSpace(info.BankReference)

	var problems []string
	if err := validation.Struct(info); err != nil {
		problems = append(problems, utils.Problems(err)...)
	}
	code, err := ParseGatewayStatus(req.Status)
	if err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, utils.NewValidationError(problems...)
	}

	txn, err := s.transactions.ApplyGatewayUpdate(ctx, info.OrderID, repositories.GatewayUpdate{
		Status:            MapGatewayStatus(code),
		OrderAmount:       *info.OrderAmount,
		TransactionAmount: *info.TransactionAmount,
		Gateway:           info.Gateway,
		BankReference:     info.BankReference,
	})
	if err != nil {
		return nil, utils.StoreFailure("apply gateway update", err)
	}
	if txn == nil {
		return nil, utils.NotFound("Transaction with order_id %s not found.", info.OrderID)
	}
	return txn, nil
}

func (s *StatusUpdateService) recordEvent(ctx context.Context, event *db_models.WebhookEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Create(ctx, event); err != nil {
		s.log.Warn("failed to record webhook event",
			zap.String("order_id", event.OrderID),
			zap.String("outcome", string(event.Outcome)),
			zap.Error(err))
	}
}

var (
	errGatewayStatusMissing = errors.New("status is required.")
	errGatewayStatusInvalid = errors.New("Invalid status. Gateway status must be a number.")
)

// ParseGatewayStatus reads the gateway status code. Only a bare JSON number is accepted.
func ParseGatewayStatus(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errGatewayStatusMissing
	}
	if raw[0] == '"' {
		return 0, errGatewayStatusInvalid
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, errGatewayStatusInvalid
	}
	f, err := n.Float64()
	if err != nil {
		return 0, errGatewayStatusInvalid
	}
	return f, nil
}

func MapGatewayStatus(code float64) db_models.TransactionStatus {
	if code == GatewayStatusOK {
		return db_models.TxnStatusSuccess
	}
	return db_models.TxnStatusFailed
}

// rawPayload keeps a body that is not valid JSON as a JSON string so it still fits the payload column.
func rawPayload(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	b, err := json.Marshal(string(body))
	if err != nil {
		return []byte("null")
	}
	return b
}

func webhookPayload(req request_models.WebhookRequest) []byte {
	if len(req.Raw) > 0 && json.Valid(req.Raw) {
		return req.Raw
	}
	b, err := json.Marshal(req)
	if err != nil {
		return []byte("{}")
	}
	return b
}

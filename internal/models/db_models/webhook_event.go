package db_models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WebhookOutcome string

const (
	WebhookOutcomeUpdated  WebhookOutcome = "updated"
	WebhookOutcomeRejected WebhookOutcome = "rejected"
	WebhookOutcomeNotFound WebhookOutcome = "not_found"
	WebhookOutcomeError    WebhookOutcome = "error"
)

// WebhookEvent is one inbound gateway callback, kept for audit and replay debugging.
type WebhookEvent struct {
	BaseModel
	OrderID    string         `gorm:"index" json:"order_id"`
	StatusCode string         `json:"status_code"`
	Payload    datatypes.JSON `json:"payload"`
	Outcome    WebhookOutcome `gorm:"type:varchar(16);index" json:"outcome"`
	Error      string         `json:"error,omitempty"`
	ReceivedAt time.Time      `gorm:"index" json:"received_at"`
}

func (WebhookEvent) TableName() string { return "webhook_events" }

func (e *WebhookEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now()
	}
	e.ReceivedAt = e.ReceivedAt.UTC()
	return e.BaseModel.BeforeCreate(tx)
}

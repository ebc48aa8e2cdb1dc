// Package notify delivers domain events to an external sink. Delivery is best
// effort: callers log failures and never surface them.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a domain event.
type EventType string

const (
	EventBillsGenerated   EventType = "bills.generated"
	EventPaymentSubmitted EventType = "payment.submitted"
	EventPaymentReviewed  EventType = "payment.reviewed"
)

// Event is the message body published for every domain event. Fields that
// do not apply to the event type are omitted.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	// Bills generated.
	Month     string `json:"month,omitempty"`
	BillCount int    `json:"bill_count,omitempty"`

	// Payment submitted or reviewed.
	SubmissionID string           `json:"submission_id,omitempty"`
	TenantID     string           `json:"tenant_id,omitempty"`
	Status       string           `json:"status,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event.
func EventFromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Notifier receives domain events.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier writes events to a logger. It is the default sink.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs the event at info level.
func (n LogNotifier) Notify(ctx context.Context, event Event) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Event",
		"type", event.Type,
		"month", event.Month,
		"bill_count", event.BillCount,
		"submission_id", event.SubmissionID,
		"tenant_id", event.TenantID,
		"status", event.Status,
	)
	return nil
}

// Send delivers event through n and logs a failure instead of returning it.
func Send(ctx context.Context, n Notifier, logger *slog.Logger, event Event) {
	if n == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := n.Notify(ctx, event); err != nil {
		logger.WarnContext(ctx, "Event delivery failed", "type", event.Type, "error", err)
	}
}

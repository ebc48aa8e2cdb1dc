// Package billing holds issued bills and generates the monthly batch from the
// share ledger.
package billing

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/calculator"
	"github.com/mmynk/roomshare/internal/models"
)

// Ledger stores bills in insertion order. Beyond shape checks on Add it
// enforces no business rule: the primary occupant may edit any field.
type Ledger struct {
	mu     sync.Mutex
	bills  []*models.Bill
	logger *slog.Logger
}

// NewLedger creates an empty bill ledger.
func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{logger: logger.With("component", "bill_ledger")}
}

// BillPatch holds the fields to change in Update. Nil fields are left alone.
type BillPatch struct {
	Type        *models.BillType
	Amount      *decimal.Decimal
	DueDate     *models.Date
	Status      *models.BillStatus
	IssuedTo    *string
	Month       *string
	Description *string
}

// Add stores a copy of bill with a fresh ID. An empty status becomes pending.
func (l *Ledger) Add(bill models.Bill) (*models.Bill, error) {
	if bill.Status == "" {
		bill.Status = models.BillPending
	}
	if err := validateBill(&bill); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bill.ID = uuid.New().String()
	l.bills = append(l.bills, &bill)
	l.logger.Info("Bill added", "bill_id", bill.ID, "type", bill.Type, "issued_to", bill.IssuedTo, "amount", bill.Amount)
	return bill.Clone(), nil
}

// addBatch appends already-built bills under one lock.
func (l *Ledger) addBatch(bills []models.Bill) []*models.Bill {
	l.mu.Lock()
	defer l.mu.Unlock()

	created := make([]*models.Bill, 0, len(bills))
	for i := range bills {
		bill := bills[i]
		bill.ID = uuid.New().String()
		l.bills = append(l.bills, &bill)
		created = append(created, bill.Clone())
	}
	return created
}

// Update merges patch into the bill with the given ID. Returns false when the
// bill does not exist.
func (l *Ledger) Update(id string, patch BillPatch) (*models.Bill, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(id)
	if idx < 0 {
		l.logger.Warn("Update ignored for unknown bill", "bill_id", id)
		return nil, false, nil
	}

	updated := *l.bills[idx]
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.DueDate != nil {
		updated.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.IssuedTo != nil {
		updated.IssuedTo = *patch.IssuedTo
	}
	if patch.Month != nil {
		updated.Month = *patch.Month
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if err := validateBill(&updated); err != nil {
		return nil, true, err
	}

	l.bills[idx] = &updated
	l.logger.Info("Bill updated", "bill_id", id, "status", updated.Status, "amount", updated.Amount)
	return updated.Clone(), true, nil
}

// Delete removes a bill and returns it. Returns false when it does not exist.
func (l *Ledger) Delete(id string) (*models.Bill, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(id)
	if idx < 0 {
		l.logger.Warn("Delete ignored for unknown bill", "bill_id", id)
		return nil, false
	}
	removed := l.bills[idx]
	l.bills = slices.Delete(l.bills, idx, idx+1)
	l.logger.Info("Bill deleted", "bill_id", id)
	return removed, true
}

// Get returns the bill with the given ID.
func (l *Ledger) Get(id string) (*models.Bill, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.index(id)
	if idx < 0 {
		return nil, apperr.NotFound("bill", id)
	}
	return l.bills[idx].Clone(), nil
}

// All returns every bill in insertion order.
func (l *Ledger) All() []*models.Bill {
	return l.filter(func(*models.Bill) bool { return true })
}

// ByMonth returns bills whose month label equals month.
func (l *Ledger) ByMonth(month string) []*models.Bill {
	return l.filter(func(b *models.Bill) bool { return b.Month == month })
}

// ByTenant returns bills issued to the given occupant.
func (l *Ledger) ByTenant(occupantID string) []*models.Bill {
	return l.filter(func(b *models.Bill) bool { return b.IssuedTo == occupantID })
}

// ByStatus returns bills with the given status.
func (l *Ledger) ByStatus(status models.BillStatus) []*models.Bill {
	return l.filter(func(b *models.Bill) bool { return b.Status == status })
}

// MarkOverdue moves every pending bill due before asOf to overdue and returns
// the changed bills. It only runs when called.
func (l *Ledger) MarkOverdue(asOf models.Date) []*models.Bill {
	l.mu.Lock()
	defer l.mu.Unlock()

	var changed []*models.Bill
	for _, b := range l.bills {
		if b.Status == models.BillPending && b.DueDate.Before(asOf) {
			b.Status = models.BillOverdue
			changed = append(changed, b.Clone())
		}
	}
	if len(changed) > 0 {
		l.logger.Info("Bills marked overdue", "count", len(changed), "as_of", asOf.String())
	}
	return changed
}

// Summary aggregates all bills by type.
func (l *Ledger) Summary() []calculator.TypeSummary {
	return calculator.SummarizeBills(l.All())
}

// Statement computes the outstanding position of one occupant.
func (l *Ledger) Statement(occupantID string) calculator.Statement {
	return calculator.BuildStatement(occupantID, l.ByTenant(occupantID))
}

func (l *Ledger) filter(keep func(*models.Bill) bool) []*models.Bill {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]*models.Bill, 0)
	for _, b := range l.bills {
		if keep(b) {
			result = append(result, b.Clone())
		}
	}
	return result
}

func (l *Ledger) index(id string) int {
	return slices.IndexFunc(l.bills, func(b *models.Bill) bool { return b.ID == id })
}

func validateBill(b *models.Bill) error {
	if !b.Type.Valid() {
		return apperr.Invalid("type", "unknown bill type %q", b.Type)
	}
	if !b.Status.Valid() {
		return apperr.Invalid("status", "unknown bill status %q", b.Status)
	}
	if b.Amount.IsNegative() {
		return apperr.Invalid("amount", "amount cannot be negative")
	}
	if b.IssuedTo == "" {
		return apperr.Invalid("issued_to", "recipient is required")
	}
	if strings.TrimSpace(b.Month) == "" {
		return apperr.Invalid("month", "billing month is required")
	}
	return nil
}

// Package payments implements the review workflow for payment submissions.
//
// A submission starts pending and moves once to approved or rejected. Both
// are terminal: reviewing a terminal submission again is a conflict.
package payments

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/models"
)

// OccupantDirectory resolves submitters. *ledger.Ledger implements it.
type OccupantDirectory interface {
	Occupant(id string) (*models.Occupant, bool)
}

// SubmitInput is an occupant's claim of payment.
type SubmitInput struct {
	TenantID string
	Type     models.BillType
	Amount   decimal.Decimal
	Month    string
	Notes    string
	ProofURL string
}

// Workflow owns the submissions. It shares no lock with the bill side.
type Workflow struct {
	mu          sync.Mutex
	submissions []*models.PaymentSubmission
	occupants   OccupantDirectory
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithClock overrides the clock used for submission and review dates.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

// New creates an empty workflow resolving submitters through occupants.
func New(occupants OccupantDirectory, opts ...Option) *Workflow {
	w := &Workflow{
		occupants: occupants,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("component", "payments")
	return w
}

// Submit records a pending submission.
func (w *Workflow) Submit(in SubmitInput) (*models.PaymentSubmission, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Invalid("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(in.Month) == "" {
		return nil, apperr.Invalid("month", "month is required")
	}
	if in.Type == "" {
		in.Type = models.BillRent
	}
	if !in.Type.Valid() {
		return nil, apperr.Invalid("type", "unknown payment type %q", in.Type)
	}
	tenant, ok := w.occupants.Occupant(in.TenantID)
	if !ok {
		return nil, apperr.Invalid("tenant_id", "unknown occupant %q", in.TenantID)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sub := &models.PaymentSubmission{
		ID:             uuid.New().String(),
		TenantID:       tenant.ID,
		TenantName:     tenant.Name,
		Type:           in.Type,
		Amount:         in.Amount,
		Month:          strings.TrimSpace(in.Month),
		SubmissionDate: models.DateOf(w.now()),
		Status:         models.SubmissionPending,
		ProofURL:       in.ProofURL,
		Notes:          in.Notes,
	}
	w.submissions = append(w.submissions, sub)

	w.logger.Info("Payment submitted",
		"submission_id", sub.ID,
		"tenant_id", sub.TenantID,
		"type", sub.Type,
		"amount", sub.Amount,
		"month", sub.Month,
	)
	return sub.Clone(), nil
}

// Approve marks a pending submission approved. Notes are optional. Unknown
// IDs return nil without error.
func (w *Workflow) Approve(id, reviewNotes string) (*models.PaymentSubmission, error) {
	return w.review(id, models.SubmissionApproved, reviewNotes)
}

// Reject marks a pending submission rejected. A reason is required.
func (w *Workflow) Reject(id, reviewNotes string) (*models.PaymentSubmission, error) {
	if strings.TrimSpace(reviewNotes) == "" {
		return nil, apperr.Invalid("review_notes", "a rejection reason is required")
	}
	return w.review(id, models.SubmissionRejected, reviewNotes)
}

func (w *Workflow) review(id string, to models.SubmissionStatus, notes string) (*models.PaymentSubmission, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.index(id)
	if idx < 0 {
		w.logger.Warn("Review ignored for unknown submission", "submission_id", id, "status", to)
		return nil, nil
	}
	sub := w.submissions[idx]
	if sub.Status.Terminal() {
		return nil, apperr.Conflict("submission %s is already %s", id, sub.Status)
	}

	sub.Status = to
	sub.ReviewNotes = strings.TrimSpace(notes)
	sub.ReviewDate = models.DateOf(w.now())

	w.logger.Info("Payment reviewed", "submission_id", id, "tenant_id", sub.TenantID, "status", to)
	return sub.Clone(), nil
}

// Get returns the submission with the given ID.
func (w *Workflow) Get(id string) (*models.PaymentSubmission, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.index(id)
	if idx < 0 {
		return nil, apperr.NotFound("submission", id)
	}
	return w.submissions[idx].Clone(), nil
}

// All returns every submission in submission order.
func (w *Workflow) All() []*models.PaymentSubmission {
	return w.filter(func(*models.PaymentSubmission) bool { return true })
}

// ByTenant returns the submissions of one occupant.
func (w *Workflow) ByTenant(tenantID string) []*models.PaymentSubmission {
	return w.filter(func(s *models.PaymentSubmission) bool { return s.TenantID == tenantID })
}

// Pending returns the submissions awaiting review.
func (w *Workflow) Pending() []*models.PaymentSubmission {
	return w.filter(func(s *models.PaymentSubmission) bool { return s.Status == models.SubmissionPending })
}

func (w *Workflow) filter(keep func(*models.PaymentSubmission) bool) []*models.PaymentSubmission {
	w.mu.Lock()
	defer w.mu.Unlock()

	result := make([]*models.PaymentSubmission, 0)
	for _, s := range w.submissions {
		if keep(s) {
			result = append(result, s.Clone())
		}
	}
	return result
}

func (w *Workflow) index(id string) int {
	return slices.IndexFunc(w.submissions, func(s *models.PaymentSubmission) bool { return s.ID == id })
}

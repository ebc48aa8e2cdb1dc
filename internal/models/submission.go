package models

import "github.com/shopspring/decimal"

// SubmissionStatus is the review state of a payment submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

// PaymentSubmission is an occupant's proof of payment awaiting review by the
// primary occupant. Submissions are never deleted.
type PaymentSubmission struct {
	// ID is the unique identifier for the submission (UUID format).
	ID string

	// TenantID and TenantName identify the submitter. The name is captured at
	// submission time.
	TenantID   string
	TenantName string

	Type   BillType
	Amount decimal.Decimal

	// Month is the billing month label the payment covers.
	Month string

	SubmissionDate Date
	Status         SubmissionStatus

	// ProofURL is an opaque reference to a receipt; it is never dereferenced.
	ProofURL string

	// Notes are the submitter's own comments.
	Notes string

	// ReviewNotes and ReviewDate are set by Approve or Reject.
	ReviewNotes string
	ReviewDate  Date
}

// Clone returns a copy of the submission.
func (p *PaymentSubmission) Clone() *PaymentSubmission {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

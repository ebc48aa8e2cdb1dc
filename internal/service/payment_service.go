package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/roomshare/internal/models"
	"github.com/mmynk/roomshare/internal/notify"
	"github.com/mmynk/roomshare/internal/payments"
)

// PaymentService implements roomshare.v1.PaymentService.
type PaymentService struct {
	core *Core
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(core *Core) *PaymentService {
	return &PaymentService{core: core}
}

// SubmitPayment records an occupant's proof of payment for review.
func (s *PaymentService) SubmitPayment(ctx context.Context, req *connect.Request[SubmitPaymentRequest]) (*connect.Response[SubmissionResponse], error) {
	tenantID := req.Msg.TenantID
	if tenantID == "" {
		tenantID = s.core.actor(ctx)
	}

	sub, err := s.core.Payments.Submit(payments.SubmitInput{
		TenantID: tenantID,
		Type:     models.BillType(req.Msg.Type),
		Amount:   req.Msg.Amount,
		Month:    req.Msg.Month,
		Notes:    req.Msg.Notes,
		ProofURL: req.Msg.ProofURL,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	s.recordTransition(ctx, notify.EventPaymentSubmitted, sub)
	return connect.NewResponse(submissionResponse(sub)), nil
}

// ApprovePayment approves a pending submission. Unknown IDs return an empty
// response; terminal submissions fail with FailedPrecondition.
func (s *PaymentService) ApprovePayment(ctx context.Context, req *connect.Request[ReviewPaymentRequest]) (*connect.Response[SubmissionResponse], error) {
	sub, err := s.core.Payments.Approve(req.Msg.SubmissionID, req.Msg.ReviewNotes)
	if err != nil {
		return nil, toConnectError(err)
	}
	if sub != nil {
		s.recordTransition(ctx, notify.EventPaymentReviewed, sub)
	}
	return connect.NewResponse(submissionResponse(sub)), nil
}

// RejectPayment rejects a pending submission. Review notes are required.
func (s *PaymentService) RejectPayment(ctx context.Context, req *connect.Request[ReviewPaymentRequest]) (*connect.Response[SubmissionResponse], error) {
	sub, err := s.core.Payments.Reject(req.Msg.SubmissionID, req.Msg.ReviewNotes)
	if err != nil {
		return nil, toConnectError(err)
	}
	if sub != nil {
		s.recordTransition(ctx, notify.EventPaymentReviewed, sub)
	}
	return connect.NewResponse(submissionResponse(sub)), nil
}

// GetPayment returns one submission or NotFound.
func (s *PaymentService) GetPayment(ctx context.Context, req *connect.Request[GetPaymentRequest]) (*connect.Response[SubmissionResponse], error) {
	sub, err := s.core.Payments.Get(req.Msg.SubmissionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(submissionResponse(sub)), nil
}

// ListPayments returns submissions, optionally for one tenant or pending only.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	var subs []*models.PaymentSubmission
	switch {
	case req.Msg.TenantID != "":
		subs = s.core.Payments.ByTenant(req.Msg.TenantID)
	case req.Msg.PendingOnly:
		subs = s.core.Payments.Pending()
	default:
		subs = s.core.Payments.All()
	}

	resp := &ListPaymentsResponse{Submissions: []Submission{}}
	for _, sub := range subs {
		if req.Msg.PendingOnly && sub.Status != models.SubmissionPending {
			continue
		}
		resp.Submissions = append(resp.Submissions, fromSubmission(sub))
	}
	return connect.NewResponse(resp), nil
}

func (s *PaymentService) recordTransition(ctx context.Context, event notify.EventType, sub *models.PaymentSubmission) {
	if s.core.Metrics != nil {
		s.core.Metrics.RecordSubmission(sub.Status)
	}
	amount := sub.Amount
	s.core.notify(ctx, notify.Event{
		Type:         event,
		SubmissionID: sub.ID,
		TenantID:     sub.TenantID,
		Status:       string(sub.Status),
		Month:        sub.Month,
		Amount:       &amount,
	})
}

func submissionResponse(sub *models.PaymentSubmission) *SubmissionResponse {
	resp := &SubmissionResponse{}
	if sub != nil {
		msg := fromSubmission(sub)
		resp.Submission = &msg
	}
	return resp
}

package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/calculator"
	"github.com/mmynk/roomshare/internal/models"
)

// Share is the wire form of models.Share.
type Share struct {
	RentAmount          decimal.Decimal `json:"rent_amount"`
	UtilitiesPercentage decimal.Decimal `json:"utilities_percentage"`
	JoinDate            models.Date     `json:"join_date"`
	IsActive            bool            `json:"is_active"`
	Discount            *Discount       `json:"discount,omitempty" validate:"-"`
}

// Discount is the wire form of models.Discount.
type Discount struct {
	ID          string          `json:"id,omitempty"`
	Kind        string          `json:"kind" validate:"required,oneof=percentage fixed"`
	Value       decimal.Decimal `json:"value"`
	Reason      string          `json:"reason" validate:"required"`
	StartDate   models.Date     `json:"start_date"`
	EndDate     models.Date     `json:"end_date"`
	IsActive    bool            `json:"is_active"`
	AppliedBy   string          `json:"applied_by,omitempty"`
	AppliedDate models.Date     `json:"applied_date"`
}

// Occupant is the wire form of models.Occupant.
type Occupant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Share *Share `json:"share,omitempty"`

	// EffectiveRent is the rent after discount, zero without a share.
	EffectiveRent decimal.Decimal `json:"effective_rent"`
}

// Bill is the wire form of models.Bill.
type Bill struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     models.Date     `json:"due_date"`
	Status      string          `json:"status"`
	IssuedBy    string          `json:"issued_by"`
	IssuedTo    string          `json:"issued_to"`
	Month       string          `json:"month"`
	Description string          `json:"description,omitempty"`
}

// Submission is the wire form of models.PaymentSubmission.
type Submission struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	TenantName     string          `json:"tenant_name"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Month          string          `json:"month"`
	SubmissionDate models.Date     `json:"submission_date"`
	Status         string          `json:"status"`
	ProofURL       string          `json:"proof_url,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	ReviewNotes    string          `json:"review_notes,omitempty"`
	ReviewDate     models.Date     `json:"review_date"`
}

// Property is the wire form of models.PropertySettings.
type Property struct {
	UnitNo       string      `json:"unit_no" validate:"required"`
	Address      string      `json:"address" validate:"required"`
	PropertyName string      `json:"property_name,omitempty"`
	WifiSSID     string      `json:"wifi_ssid,omitempty"`
	WifiPassword string      `json:"wifi_password,omitempty"`
	UpdatedBy    string      `json:"updated_by,omitempty"`
	UpdatedDate  models.Date `json:"updated_date"`
}

// TypeSummary is the wire form of calculator.TypeSummary.
type TypeSummary struct {
	Type    string          `json:"type"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Pending int             `json:"pending"`
	Paid    int             `json:"paid"`
	Overdue int             `json:"overdue"`
}

// Currency is the display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Occupant service messages.

type AddOccupantRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Share Share  `json:"share"`
}

type AddOccupantResponse struct {
	Occupant Occupant `json:"occupant"`
}

type RemoveOccupantRequest struct {
	OccupantID string `json:"occupant_id" validate:"required"`
}

type RemoveOccupantResponse struct {
	Removed bool `json:"removed"`
}

type UpdateShareRequest struct {
	OccupantID string `json:"occupant_id" validate:"required"`
	Share      Share  `json:"share"`
}

// UpdateShareResponse carries a nil occupant when the ID was unknown.
type UpdateShareResponse struct {
	Occupant *Occupant `json:"occupant,omitempty"`
}

type ListOccupantsRequest struct{}

type ListOccupantsResponse struct {
	Primary   *Occupant  `json:"primary,omitempty"`
	Occupants []Occupant `json:"occupants"`
}

type GetTotalsRequest struct{}

type GetTotalsResponse struct {
	TotalRent          decimal.Decimal `json:"total_rent"`
	TotalUtilities     decimal.Decimal `json:"total_utilities"`
	Budget             decimal.Decimal `json:"budget"`
	AvailableRent      decimal.Decimal `json:"available_rent"`
	AvailableUtilities decimal.Decimal `json:"available_utilities"`
	Currency           Currency        `json:"currency"`
}

type AddDiscountRequest struct {
	OccupantID string   `json:"occupant_id" validate:"required"`
	Discount   Discount `json:"discount"`
}

// DiscountResponse carries a nil discount when the call was ignored.
type DiscountResponse struct {
	Discount *Discount `json:"discount,omitempty"`
}

type UpdateDiscountRequest struct {
	OccupantID string   `json:"occupant_id" validate:"required"`
	Discount   Discount `json:"discount"`
}

type RemoveDiscountRequest struct {
	OccupantID string `json:"occupant_id" validate:"required"`
}

type RemoveDiscountResponse struct {
	Removed bool `json:"removed"`
}

type GetEffectiveRentRequest struct {
	OccupantID string `json:"occupant_id" validate:"required"`
}

type GetEffectiveRentResponse struct {
	OccupantID    string          `json:"occupant_id"`
	EffectiveRent decimal.Decimal `json:"effective_rent"`
}

// Bill service messages.

type GenerateBillsRequest struct {
	Month       string          `json:"month" validate:"required,datetime=2006-01"`
	Electricity decimal.Decimal `json:"electricity"`
	Water       decimal.Decimal `json:"water"`
	Internet    decimal.Decimal `json:"internet"`
}

type BillsResponse struct {
	Bills []Bill `json:"bills"`
}

type AddBillRequest struct {
	Type        string          `json:"type" validate:"required,oneof=rent electricity water internet other"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     models.Date     `json:"due_date"`
	Status      string          `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	IssuedTo    string          `json:"issued_to" validate:"required"`
	Month       string          `json:"month" validate:"required"`
	Description string          `json:"description"`
}

type BillResponse struct {
	Bill Bill `json:"bill"`
}

// UpdateBillRequest changes only the fields that are set.
type UpdateBillRequest struct {
	BillID      string           `json:"bill_id" validate:"required"`
	Type        *string          `json:"type,omitempty" validate:"omitempty,oneof=rent electricity water internet other"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	DueDate     *models.Date     `json:"due_date,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue"`
	IssuedTo    *string          `json:"issued_to,omitempty"`
	Month       *string          `json:"month,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// BillLookupResponse reports Found=false when the bill did not exist.
type BillLookupResponse struct {
	Found bool  `json:"found"`
	Bill  *Bill `json:"bill,omitempty"`
}

type DeleteBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id" validate:"required"`
}

// ListBillsRequest filters are combined; empty filters match everything.
type ListBillsRequest struct {
	Month    string `json:"month,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue"`
}

// MarkOverdueRequest uses today when AsOf is zero.
type MarkOverdueRequest struct {
	AsOf models.Date `json:"as_of"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Types    []TypeSummary `json:"types"`
	Currency Currency      `json:"currency"`
}

type GetStatementRequest struct {
	OccupantID string `json:"occupant_id" validate:"required"`
}

type GetStatementResponse struct {
	OccupantID   string          `json:"occupant_id"`
	OccupantName string          `json:"occupant_name"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Paid         decimal.Decimal `json:"paid"`
	NextDueDate  models.Date     `json:"next_due_date"`
	BillCount    int             `json:"bill_count"`
}

// Payment service messages.

// SubmitPaymentRequest defaults TenantID to the calling occupant.
type SubmitPaymentRequest struct {
	TenantID string          `json:"tenant_id,omitempty"`
	Type     string          `json:"type" validate:"omitempty,oneof=rent electricity water internet other"`
	Amount   decimal.Decimal `json:"amount"`
	Month    string          `json:"month" validate:"required"`
	Notes    string          `json:"notes,omitempty"`
	ProofURL string          `json:"proof_url,omitempty" validate:"omitempty,url"`
}

// SubmissionResponse carries a nil submission when the ID was unknown.
type SubmissionResponse struct {
	Submission *Submission `json:"submission,omitempty"`
}

type ReviewPaymentRequest struct {
	SubmissionID string `json:"submission_id" validate:"required"`
	ReviewNotes  string `json:"review_notes,omitempty"`
}

type GetPaymentRequest struct {
	SubmissionID string `json:"submission_id" validate:"required"`
}

type ListPaymentsRequest struct {
	TenantID    string `json:"tenant_id,omitempty"`
	PendingOnly bool   `json:"pending_only,omitempty"`
}

type ListPaymentsResponse struct {
	Submissions []Submission `json:"submissions"`
}

// Property service messages.

type GetPropertyRequest struct{}

type PropertyResponse struct {
	Property Property `json:"property"`
}

type UpdatePropertyRequest struct {
	Property Property `json:"property"`
}

func toShareModel(s Share) models.Share {
	return models.Share{
		RentAmount:          s.RentAmount,
		UtilitiesPercentage: s.UtilitiesPercentage,
		JoinDate:            s.JoinDate,
		IsActive:            s.IsActive,
	}
}

func toDiscountModel(d Discount) models.Discount {
	return models.Discount{
		Kind:      models.DiscountKind(d.Kind),
		Value:     d.Value,
		Reason:    d.Reason,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		IsActive:  d.IsActive,
	}
}

func fromDiscount(d *models.Discount) *Discount {
	if d == nil {
		return nil
	}
	return &Discount{
		ID:          d.ID,
		Kind:        string(d.Kind),
		Value:       d.Value,
		Reason:      d.Reason,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsActive:    d.IsActive,
		AppliedBy:   d.AppliedBy,
		AppliedDate: d.AppliedDate,
	}
}

func fromOccupant(o *models.Occupant) Occupant {
	msg := Occupant{
		ID:            o.ID,
		Name:          o.Name,
		Email:         o.Email,
		Role:          string(o.Role),
		EffectiveRent: calculator.ShareRent(o.Share),
	}
	if o.Share != nil {
		msg.Share = &Share{
			RentAmount:          o.Share.RentAmount,
			UtilitiesPercentage: o.Share.UtilitiesPercentage,
			JoinDate:            o.Share.JoinDate,
			IsActive:            o.Share.IsActive,
			Discount:            fromDiscount(o.Share.Discount),
		}
	}
	return msg
}

func fromBill(b *models.Bill) Bill {
	return Bill{
		ID:          b.ID,
		Type:        string(b.Type),
		Amount:      b.Amount,
		DueDate:     b.DueDate,
		Status:      string(b.Status),
		IssuedBy:    b.IssuedBy,
		IssuedTo:    b.IssuedTo,
		Month:       b.Month,
		Description: b.Description,
	}
}

func fromBills(bills []*models.Bill) []Bill {
	msgs := make([]Bill, len(bills))
	for i, b := range bills {
		msgs[i] = fromBill(b)
	}
	return msgs
}

func fromSubmission(s *models.PaymentSubmission) Submission {
	return Submission{
		ID:             s.ID,
		TenantID:       s.TenantID,
		TenantName:     s.TenantName,
		Type:           string(s.Type),
		Amount:         s.Amount,
		Month:          s.Month,
		SubmissionDate: s.SubmissionDate,
		Status:         string(s.Status),
		ProofURL:       s.ProofURL,
		Notes:          s.Notes,
		ReviewNotes:    s.ReviewNotes,
		ReviewDate:     s.ReviewDate,
	}
}

func fromProperty(p models.PropertySettings) Property {
	return Property{
		UnitNo:       p.UnitNo,
		Address:      p.Address,
		PropertyName: p.PropertyName,
		WifiSSID:     p.WifiSSID,
		WifiPassword: p.WifiPassword,
		UpdatedBy:    p.UpdatedBy,
		UpdatedDate:  p.UpdatedDate,
	}
}

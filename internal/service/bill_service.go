package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/roomshare/internal/billing"
	"github.com/mmynk/roomshare/internal/models"
	"github.com/mmynk/roomshare/internal/notify"
)

// unknownOccupant is shown for bills whose recipient has been removed.
const unknownOccupant = "Unknown"

// BillService implements roomshare.v1.BillService.
type BillService struct {
	core *Core
}

// NewBillService creates a new BillService.
func NewBillService(core *Core) *BillService {
	return &BillService{core: core}
}

// GenerateBills issues the monthly batch for every active share and returns
// only the bills it created.
func (s *BillService) GenerateBills(ctx context.Context, req *connect.Request[GenerateBillsRequest]) (*connect.Response[BillsResponse], error) {
	issuer := ""
	if primary, ok := s.core.Shares.Primary(); ok {
		issuer = primary.ID
	}

	bills, err := s.core.Generator.Generate(req.Msg.Month, billing.UtilityTotals{
		Electricity: req.Msg.Electricity,
		Water:       req.Msg.Water,
		Internet:    req.Msg.Internet,
	}, issuer)
	if err != nil {
		return nil, toConnectError(err)
	}

	if s.core.Metrics != nil {
		s.core.Metrics.RecordBillsGenerated(bills)
	}
	month := ""
	if len(bills) > 0 {
		month = bills[0].Month
	}
	s.core.notify(ctx, notify.Event{Type: notify.EventBillsGenerated, Month: month, BillCount: len(bills)})

	return connect.NewResponse(&BillsResponse{Bills: fromBills(bills)}), nil
}

// AddBill records a manual bill. IssuedBy is the calling occupant.
func (s *BillService) AddBill(ctx context.Context, req *connect.Request[AddBillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.core.Bills.Add(models.Bill{
		Type:        models.BillType(req.Msg.Type),
		Amount:      req.Msg.Amount,
		DueDate:     req.Msg.DueDate,
		Status:      models.BillStatus(req.Msg.Status),
		IssuedBy:    s.core.actor(ctx),
		IssuedTo:    req.Msg.IssuedTo,
		Month:       req.Msg.Month,
		Description: req.Msg.Description,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&BillResponse{Bill: fromBill(bill)}), nil
}

// UpdateBill merges the set fields into a bill. Any field may be changed.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[BillLookupResponse], error) {
	patch := billing.BillPatch{
		Amount:      req.Msg.Amount,
		DueDate:     req.Msg.DueDate,
		IssuedTo:    req.Msg.IssuedTo,
		Month:       req.Msg.Month,
		Description: req.Msg.Description,
	}
	if req.Msg.Type != nil {
		t := models.BillType(*req.Msg.Type)
		patch.Type = &t
	}
	if req.Msg.Status != nil {
		st := models.BillStatus(*req.Msg.Status)
		patch.Status = &st
	}

	bill, found, err := s.core.Bills.Update(req.Msg.BillID, patch)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(lookupResponse(bill, found)), nil
}

// DeleteBill removes a bill and returns it.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[BillLookupResponse], error) {
	bill, found := s.core.Bills.Delete(req.Msg.BillID)
	return connect.NewResponse(lookupResponse(bill, found)), nil
}

// GetBill returns one bill or NotFound.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.core.Bills.Get(req.Msg.BillID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&BillResponse{Bill: fromBill(bill)}), nil
}

// ListBills returns the bills matching every set filter.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[BillsResponse], error) {
	var bills []*models.Bill
	switch {
	case req.Msg.TenantID != "":
		bills = s.core.Bills.ByTenant(req.Msg.TenantID)
	case req.Msg.Month != "":
		bills = s.core.Bills.ByMonth(req.Msg.Month)
	case req.Msg.Status != "":
		bills = s.core.Bills.ByStatus(models.BillStatus(req.Msg.Status))
	default:
		bills = s.core.Bills.All()
	}

	filtered := bills[:0]
	for _, b := range bills {
		if req.Msg.Month != "" && b.Month != req.Msg.Month {
			continue
		}
		if req.Msg.Status != "" && string(b.Status) != req.Msg.Status {
			continue
		}
		filtered = append(filtered, b)
	}
	return connect.NewResponse(&BillsResponse{Bills: fromBills(filtered)}), nil
}

// MarkOverdue moves pending bills due before AsOf, or today, to overdue.
func (s *BillService) MarkOverdue(ctx context.Context, req *connect.Request[MarkOverdueRequest]) (*connect.Response[BillsResponse], error) {
	asOf := req.Msg.AsOf
	if asOf.IsZero() {
		asOf = s.core.today()
	}
	return connect.NewResponse(&BillsResponse{Bills: fromBills(s.core.Bills.MarkOverdue(asOf))}), nil
}

// GetSummary aggregates bills by type.
func (s *BillService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	resp := &GetSummaryResponse{Types: []TypeSummary{}, Currency: s.core.Currency}
	for _, sum := range s.core.Bills.Summary() {
		resp.Types = append(resp.Types, TypeSummary{
			Type:    string(sum.Type),
			Total:   sum.Total,
			Count:   sum.Count,
			Pending: sum.Pending,
			Paid:    sum.Paid,
			Overdue: sum.Overdue,
		})
	}
	return connect.NewResponse(resp), nil
}

// GetStatement returns one occupant's outstanding position. Removed
// occupants are reported with the name "Unknown".
func (s *BillService) GetStatement(ctx context.Context, req *connect.Request[GetStatementRequest]) (*connect.Response[GetStatementResponse], error) {
	st := s.core.Bills.Statement(req.Msg.OccupantID)
	name := unknownOccupant
	if o, ok := s.core.Shares.Occupant(req.Msg.OccupantID); ok {
		name = o.Name
	}
	return connect.NewResponse(&GetStatementResponse{
		OccupantID:   st.OccupantID,
		OccupantName: name,
		Outstanding:  st.Outstanding,
		Paid:         st.Paid,
		NextDueDate:  st.NextDueDate,
		BillCount:    st.BillCount,
	}), nil
}

func lookupResponse(bill *models.Bill, found bool) *BillLookupResponse {
	resp := &BillLookupResponse{Found: found}
	if bill != nil {
		msg := fromBill(bill)
		resp.Bill = &msg
	}
	return resp
}

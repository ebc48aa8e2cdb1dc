package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/roomshare/internal/ledger"
)

// OccupantService implements roomshare.v1.OccupantService: occupants, their
// shares and discounts.
type OccupantService struct {
	core *Core
}

// NewOccupantService creates a new OccupantService.
func NewOccupantService(core *Core) *OccupantService {
	return &OccupantService{core: core}
}

// AddOccupant adds an occupant with a share.
func (s *OccupantService) AddOccupant(ctx context.Context, req *connect.Request[AddOccupantRequest]) (*connect.Response[AddOccupantResponse], error) {
	occupant, err := s.core.Shares.AddOccupant(req.Msg.Name, req.Msg.Email, toShareModel(req.Msg.Share))
	if err != nil {
		s.core.logger().Debug("AddOccupant rejected", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}
	s.core.observeAllocation()

	return connect.NewResponse(&AddOccupantResponse{Occupant: fromOccupant(occupant)}), nil
}

// RemoveOccupant deletes an occupant. Unknown IDs report Removed=false.
func (s *OccupantService) RemoveOccupant(ctx context.Context, req *connect.Request[RemoveOccupantRequest]) (*connect.Response[RemoveOccupantResponse], error) {
	removed := s.core.Shares.RemoveOccupant(req.Msg.OccupantID)
	if removed {
		s.core.observeAllocation()
	}
	return connect.NewResponse(&RemoveOccupantResponse{Removed: removed}), nil
}

// UpdateShare replaces an occupant's share, keeping its discount.
func (s *OccupantService) UpdateShare(ctx context.Context, req *connect.Request[UpdateShareRequest]) (*connect.Response[UpdateShareResponse], error) {
	occupant, err := s.core.Shares.UpdateShare(req.Msg.OccupantID, toShareModel(req.Msg.Share))
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &UpdateShareResponse{}
	if occupant != nil {
		msg := fromOccupant(occupant)
		resp.Occupant = &msg
		s.core.observeAllocation()
	}
	return connect.NewResponse(resp), nil
}

// ListOccupants returns the primary occupant and every occupant in insertion order.
func (s *OccupantService) ListOccupants(ctx context.Context, req *connect.Request[ListOccupantsRequest]) (*connect.Response[ListOccupantsResponse], error) {
	resp := &ListOccupantsResponse{Occupants: []Occupant{}}
	if primary, ok := s.core.Shares.Primary(); ok {
		msg := fromOccupant(primary)
		resp.Primary = &msg
	}
	for _, o := range s.core.Shares.Occupants() {
		resp.Occupants = append(resp.Occupants, fromOccupant(o))
	}
	return connect.NewResponse(resp), nil
}

// GetTotals returns the allocation totals against their caps.
func (s *OccupantService) GetTotals(ctx context.Context, req *connect.Request[GetTotalsRequest]) (*connect.Response[GetTotalsResponse], error) {
	utilities := s.core.Shares.TotalUtilitiesShares()
	return connect.NewResponse(&GetTotalsResponse{
		TotalRent:          s.core.Shares.TotalRentShares(),
		TotalUtilities:     utilities,
		Budget:             s.core.Shares.Budget(),
		AvailableRent:      s.core.Shares.AvailableRent(),
		AvailableUtilities: ledger.UtilitiesCap.Sub(utilities),
		Currency:           s.core.Currency,
	}), nil
}

// AddDiscount attaches a discount, replacing any existing one. AppliedBy is
// the calling occupant.
func (s *OccupantService) AddDiscount(ctx context.Context, req *connect.Request[AddDiscountRequest]) (*connect.Response[DiscountResponse], error) {
	discount, err := s.core.Shares.AddDiscount(req.Msg.OccupantID, toDiscountModel(req.Msg.Discount), s.core.actor(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DiscountResponse{Discount: fromDiscount(discount)}), nil
}

// UpdateDiscount edits the existing discount in place.
func (s *OccupantService) UpdateDiscount(ctx context.Context, req *connect.Request[UpdateDiscountRequest]) (*connect.Response[DiscountResponse], error) {
	discount, err := s.core.Shares.UpdateDiscount(req.Msg.OccupantID, toDiscountModel(req.Msg.Discount))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DiscountResponse{Discount: fromDiscount(discount)}), nil
}

// RemoveDiscount clears an occupant's discount.
func (s *OccupantService) RemoveDiscount(ctx context.Context, req *connect.Request[RemoveDiscountRequest]) (*connect.Response[RemoveDiscountResponse], error) {
	return connect.NewResponse(&RemoveDiscountResponse{
		Removed: s.core.Shares.RemoveDiscount(req.Msg.OccupantID),
	}), nil
}

// GetEffectiveRent returns the discounted rent of one occupant. Unknown
// occupants and occupants without a share pay zero.
func (s *OccupantService) GetEffectiveRent(ctx context.Context, req *connect.Request[GetEffectiveRentRequest]) (*connect.Response[GetEffectiveRentResponse], error) {
	return connect.NewResponse(&GetEffectiveRentResponse{
		OccupantID:    req.Msg.OccupantID,
		EffectiveRent: s.core.Shares.EffectiveRent(req.Msg.OccupantID),
	}), nil
}

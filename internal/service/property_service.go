package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/roomshare/internal/models"
)

// PropertyService implements roomshare.v1.PropertyService.
type PropertyService struct {
	core *Core
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(core *Core) *PropertyService {
	return &PropertyService{core: core}
}

// GetProperty returns the property settings.
func (s *PropertyService) GetProperty(ctx context.Context, req *connect.Request[GetPropertyRequest]) (*connect.Response[PropertyResponse], error) {
	return connect.NewResponse(&PropertyResponse{Property: fromProperty(s.core.Property.Get())}), nil
}

// UpdateProperty replaces the property settings. UpdatedBy is the calling occupant.
func (s *PropertyService) UpdateProperty(ctx context.Context, req *connect.Request[UpdatePropertyRequest]) (*connect.Response[PropertyResponse], error) {
	p := req.Msg.Property
	updated, err := s.core.Property.Update(models.PropertySettings{
		UnitNo:       p.UnitNo,
		Address:      p.Address,
		PropertyName: p.PropertyName,
		WifiSSID:     p.WifiSSID,
		WifiPassword: p.WifiPassword,
	}, s.core.actor(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&PropertyResponse{Property: fromProperty(updated)}), nil
}

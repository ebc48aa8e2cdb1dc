package service

import (
	"testing"

	"connectrpc.com/connect"
)

func TestProperty(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	got, err := call[GetPropertyRequest, PropertyResponse](env, PropertyServiceGetPropertyProcedure, "", &GetPropertyRequest{})
	if err != nil {
		t.Fatalf("GetProperty failed: %v", err)
	}
	if got.Property.UnitNo != "12B" {
		t.Errorf("expected seeded unit 12B, got %q", got.Property.UnitNo)
	}

	updated, err := call[UpdatePropertyRequest, PropertyResponse](env, PropertyServiceUpdatePropertyProcedure, env.primary.ID,
		&UpdatePropertyRequest{Property: Property{
			UnitNo:       "4A",
			Address:      "22 Elm Rd",
			PropertyName: "Elm Court",
			WifiSSID:     "elm-guest",
			WifiPassword: "hunter2",
		}})
	if err != nil {
		t.Fatalf("UpdateProperty failed: %v", err)
	}
	if updated.Property.UpdatedBy != env.primary.ID || updated.Property.UpdatedDate.String() != "2025-02-12" {
		t.Errorf("unexpected audit fields: %+v", updated.Property)
	}

	_, err = call[UpdatePropertyRequest, PropertyResponse](env, PropertyServiceUpdatePropertyProcedure, "",
		&UpdatePropertyRequest{Property: Property{UnitNo: "4A"}})
	assertCode(t, err, connect.CodeInvalidArgument)

	got, err = call[GetPropertyRequest, PropertyResponse](env, PropertyServiceGetPropertyProcedure, "", &GetPropertyRequest{})
	if err != nil {
		t.Fatalf("GetProperty failed: %v", err)
	}
	if got.Property.UnitNo != "4A" || got.Property.WifiSSID != "elm-guest" {
		t.Errorf("expected updated settings, got %+v", got.Property)
	}
}

package models

// PropertySettings describes the rented unit. The fields are display-only.
type PropertySettings struct {
	UnitNo       string
	Address      string
	PropertyName string
	WifiSSID     string
	WifiPassword string

	// UpdatedBy is the ID of the occupant who last changed the settings.
	UpdatedBy   string
	UpdatedDate Date
}

package calculator

import "github.com/shopspring/decimal"

// Capacity describes one capped allocation total.
type Capacity struct {
	// Limit is the cap (rent budget, or 100 for utilities).
	Limit decimal.Decimal

	// Total is the current sum over active shares.
	Total decimal.Decimal

	// Own is the contribution of the entity being edited, already included in
	// Total. Zero when adding a new entity or when its share is inactive.
	Own decimal.Decimal
}

// Others returns the total excluding the entity being edited.
func (c Capacity) Others() decimal.Decimal {
	return c.Total.Sub(c.Own)
}

// Fits reports whether candidate can replace Own without exceeding Limit:
//
//	(Total − Own) + candidate ≤ Limit
//
// Excluding Own means an entity can always re-submit its current value.
func (c Capacity) Fits(candidate decimal.Decimal) bool {
	return c.Others().Add(candidate).LessThanOrEqual(c.Limit)
}

// Available returns the headroom left under Limit, never negative.
func (c Capacity) Available() decimal.Decimal {
	return decimal.Max(decimal.Zero, c.Limit.Sub(c.Total))
}

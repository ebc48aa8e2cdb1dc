// Package calculator holds the pure arithmetic of the allocation engine:
// discounted rent, utility shares, capacity checks and bill summaries.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/models"
)

var hundred = decimal.NewFromInt(100)

// EffectiveRent computes the rent an occupant actually pays.
//
// Only the discount's IsActive flag gates it; start and end dates are not
// compared against the current date.
//
//	percentage: rent × (1 − value/100)
//	fixed:      max(0, rent − value)
func EffectiveRent(rent decimal.Decimal, discount *models.Discount) decimal.Decimal {
	if discount == nil || !discount.IsActive {
		return rent
	}

	switch discount.Kind {
	case models.DiscountPercentage:
		return rent.Mul(decimal.NewFromInt(1).Sub(discount.Value.Div(hundred)))
	case models.DiscountFixed:
		return decimal.Max(decimal.Zero, rent.Sub(discount.Value))
	default:
		return rent
	}
}

// ShareRent returns the effective rent for a share, or zero when there is none.
func ShareRent(share *models.Share) decimal.Decimal {
	if share == nil {
		return decimal.Zero
	}
	return EffectiveRent(share.RentAmount, share.Discount)
}

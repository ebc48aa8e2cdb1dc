package calculator

import "github.com/shopspring/decimal"

// UtilityShare returns an occupant's part of a utility total, rounded to two
// decimal places (half away from zero).
//
//	share = round2(total × percentage / 100)
func UtilityShare(total, percentage decimal.Decimal) decimal.Decimal {
	return total.Mul(percentage).Div(hundred).Round(2)
}

package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/calculator"
	"github.com/mmynk/roomshare/internal/models"
)

// AddDiscount attaches discount to an occupant's share, replacing any existing
// one, and stamps a fresh ID and AppliedDate. Occupants without a share are
// ignored: the call returns nil without error.
func (l *Ledger) AddDiscount(occupantID string, discount models.Discount, appliedBy string) (*models.Discount, error) {
	if err := validateDiscount(discount); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	occupant := l.find(occupantID)
	if occupant == nil || !occupant.HasShare() {
		l.logger.Warn("AddDiscount ignored", "occupant_id", occupantID)
		return nil, nil
	}

	discount.ID = uuid.New().String()
	discount.Reason = strings.TrimSpace(discount.Reason)
	discount.AppliedBy = appliedBy
	discount.AppliedDate = models.DateOf(l.now())
	occupant.Share.Discount = &discount

	l.logger.Info("Discount applied",
		"occupant_id", occupantID,
		"discount_id", discount.ID,
		"kind", discount.Kind,
		"value", discount.Value,
		"active", discount.IsActive,
	)
	return discount.Clone(), nil
}

// UpdateDiscount edits the existing discount in place, keeping its ID,
// AppliedBy and AppliedDate. Returns nil without error when the occupant has
// no discount.
func (l *Ledger) UpdateDiscount(occupantID string, discount models.Discount) (*models.Discount, error) {
	if err := validateDiscount(discount); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	occupant := l.find(occupantID)
	if occupant == nil || !occupant.HasShare() || occupant.Share.Discount == nil {
		l.logger.Warn("UpdateDiscount ignored", "occupant_id", occupantID)
		return nil, nil
	}

	existing := occupant.Share.Discount
	discount.ID = existing.ID
	discount.Reason = strings.TrimSpace(discount.Reason)
	discount.AppliedBy = existing.AppliedBy
	discount.AppliedDate = existing.AppliedDate
	occupant.Share.Discount = &discount

	l.logger.Info("Discount updated", "occupant_id", occupantID, "discount_id", discount.ID)
	return discount.Clone(), nil
}

// RemoveDiscount clears an occupant's discount. Reports whether one was removed.
func (l *Ledger) RemoveDiscount(occupantID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	occupant := l.find(occupantID)
	if occupant == nil || !occupant.HasShare() || occupant.Share.Discount == nil {
		return false
	}
	occupant.Share.Discount = nil
	l.logger.Info("Discount removed", "occupant_id", occupantID)
	return true
}

// EffectiveRent returns the rent an occupant pays after discount. Occupants
// without a share pay zero.
func (l *Ledger) EffectiveRent(occupantID string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	occupant := l.find(occupantID)
	if occupant == nil || !occupant.HasShare() {
		return decimal.Zero
	}
	return calculator.ShareRent(occupant.Share)
}

func validateDiscount(d models.Discount) error {
	if !d.Kind.Valid() {
		return apperr.Invalid("kind", "discount kind must be %q or %q", models.DiscountPercentage, models.DiscountFixed)
	}
	if !d.Value.IsPositive() {
		return apperr.Invalid("value", "discount value must be greater than zero")
	}
	if d.Kind == models.DiscountPercentage && d.Value.GreaterThan(hundredPercent) {
		return apperr.Invalid("value", "percentage discount cannot exceed 100")
	}
	if strings.TrimSpace(d.Reason) == "" {
		return apperr.Invalid("reason", "discount reason is required")
	}
	if !d.EndDate.IsZero() && !d.StartDate.IsZero() && d.EndDate.Before(d.StartDate) {
		return apperr.Invalid("end_date", "end date must not be before start date")
	}
	return nil
}

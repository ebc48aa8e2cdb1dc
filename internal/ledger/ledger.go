// Package ledger implements the share ledger: the set of occupants, their
// rent and utilities shares, and the discounts attached to those shares.
//
// A Ledger enforces two caps on active shares: the rent total may not exceed
// the configured budget and the utilities total may not exceed 100%. Every
// mutating call validates and writes under one mutex, so two concurrent edits
// cannot both pass the cap check.
package ledger

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/calculator"
	"github.com/mmynk/roomshare/internal/models"
)

var hundredPercent = decimal.NewFromInt(100)

// UtilitiesCap is the maximum total utilities percentage over active shares.
var UtilitiesCap = hundredPercent

// Ledger owns the occupants of one unit.
type Ledger struct {
	mu sync.Mutex

	budget    decimal.Decimal
	occupants []*models.Occupant // insertion order, primary included
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the clock used for join and applied dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New creates an empty ledger with the given total rent budget.
func New(budget decimal.Decimal, opts ...Option) *Ledger {
	l := &Ledger{
		budget: budget,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "ledger")
	return l
}

// ActiveShare is a snapshot of one active share, taken for bill generation.
type ActiveShare struct {
	OccupantID string
	Name       string
	Share      models.Share

	// EffectiveRent is the rent after the share's discount.
	EffectiveRent decimal.Decimal
}

// SetPrimary registers the primary occupant, replacing any previous one.
func (l *Ledger) SetPrimary(name, email string) (*models.Occupant, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	previous := -1
	excludeID := ""
	for i, o := range l.occupants {
		if o.Role == models.RolePrimary {
			previous, excludeID = i, o.ID
			break
		}
	}
	name, email, err := l.validateIdentity(name, email, excludeID)
	if err != nil {
		return nil, err
	}
	if previous >= 0 {
		l.occupants = append(l.occupants[:previous], l.occupants[previous+1:]...)
	}

	primary := &models.Occupant{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
		Role:  models.RolePrimary,
	}
	l.occupants = append(l.occupants, primary)
	l.logger.Info("Primary occupant set", "occupant_id", primary.ID, "name", name)
	return primary.Clone(), nil
}

// Primary returns the primary occupant, if one is registered.
func (l *Ledger) Primary() (*models.Occupant, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, o := range l.occupants {
		if o.Role == models.RolePrimary {
			return o.Clone(), true
		}
	}
	return nil, false
}

// AddOccupant adds an occupant with the given share and returns it with a
// fresh ID. Any discount on share is ignored; discounts are attached with
// AddDiscount.
func (l *Ledger) AddOccupant(name, email string, share models.Share) (*models.Occupant, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name, email, err := l.validateIdentity(name, email, "")
	if err != nil {
		return nil, err
	}
	if err := validateShare(share); err != nil {
		return nil, err
	}
	if err := l.checkCapacity(share, nil); err != nil {
		return nil, err
	}

	share.Discount = nil
	if share.JoinDate.IsZero() {
		share.JoinDate = models.DateOf(l.now())
	}
	occupant := &models.Occupant{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
		Role:  models.RoleOccupant,
		Share: &share,
	}
	l.occupants = append(l.occupants, occupant)

	l.logger.Info("Occupant added",
		"occupant_id", occupant.ID,
		"rent_amount", share.RentAmount,
		"utilities_percentage", share.UtilitiesPercentage,
		"active", share.IsActive,
	)
	return occupant.Clone(), nil
}

// RemoveOccupant permanently deletes an occupant and its share. Unknown IDs
// and the primary occupant are ignored. Bills and submissions referencing the
// occupant are kept.
func (l *Ledger) RemoveOccupant(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, o := range l.occupants {
		if o.ID != id {
			continue
		}
		if o.Role != models.RoleOccupant {
			l.logger.Warn("RemoveOccupant ignored for non-occupant role", "occupant_id", id, "role", o.Role)
			return false
		}
		l.occupants = append(l.occupants[:i], l.occupants[i+1:]...)
		l.logger.Info("Occupant removed", "occupant_id", id)
		return true
	}

	l.logger.Warn("RemoveOccupant ignored for unknown occupant", "occupant_id", id)
	return false
}

// UpdateShare replaces an occupant's share. The cap check excludes the
// occupant's own current contribution, so re-submitting the current share
// always succeeds. The existing discount is kept. Returns nil without error
// when id is unknown or not an occupant.
func (l *Ledger) UpdateShare(id string, share models.Share) (*models.Occupant, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	occupant := l.find(id)
	if occupant == nil || !occupant.HasShare() {
		l.logger.Warn("UpdateShare ignored", "occupant_id", id)
		return nil, nil
	}
	if err := validateShare(share); err != nil {
		return nil, err
	}
	if err := l.checkCapacity(share, occupant.Share); err != nil {
		return nil, err
	}

	share.Discount = occupant.Share.Discount
	if share.JoinDate.IsZero() {
		share.JoinDate = occupant.Share.JoinDate
	}
	occupant.Share = &share

	l.logger.Info("Share updated",
		"occupant_id", id,
		"rent_amount", share.RentAmount,
		"utilities_percentage", share.UtilitiesPercentage,
		"active", share.IsActive,
	)
	return occupant.Clone(), nil
}

// Occupants returns every occupant-role entry in insertion order.
func (l *Ledger) Occupants() []*models.Occupant {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]*models.Occupant, 0, len(l.occupants))
	for _, o := range l.occupants {
		if o.Role == models.RoleOccupant {
			result = append(result, o.Clone())
		}
	}
	return result
}

// Occupant looks up any occupant, primary included.
func (l *Ledger) Occupant(id string) (*models.Occupant, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	o := l.find(id)
	if o == nil {
		return nil, false
	}
	return o.Clone(), true
}

// TotalRentShares sums RentAmount over active shares.
func (l *Ledger) TotalRentShares() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalRent()
}

// TotalUtilitiesShares sums UtilitiesPercentage over active shares.
func (l *Ledger) TotalUtilitiesShares() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalUtilities()
}

// Budget returns the configured total rent budget.
func (l *Ledger) Budget() decimal.Decimal {
	return l.budget
}

// AvailableRent returns the budget not yet allocated to active shares.
func (l *Ledger) AvailableRent() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return calculator.Capacity{Limit: l.budget, Total: l.totalRent()}.Available()
}

// ActiveShares snapshots every active share in insertion order.
func (l *Ledger) ActiveShares() []ActiveShare {
	l.mu.Lock()
	defer l.mu.Unlock()

	var shares []ActiveShare
	for _, o := range l.occupants {
		if !o.HasShare() || !o.Share.IsActive {
			continue
		}
		share := o.Share.Clone()
		shares = append(shares, ActiveShare{
			OccupantID:    o.ID,
			Name:          o.Name,
			Share:         *share,
			EffectiveRent: calculator.ShareRent(share),
		})
	}
	return shares
}

func (l *Ledger) find(id string) *models.Occupant {
	for _, o := range l.occupants {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (l *Ledger) totalRent() decimal.Decimal {
	total := decimal.Zero
	for _, o := range l.occupants {
		if o.HasShare() && o.Share.IsActive {
			total = total.Add(o.Share.RentAmount)
		}
	}
	return total
}

func (l *Ledger) totalUtilities() decimal.Decimal {
	total := decimal.Zero
	for _, o := range l.occupants {
		if o.HasShare() && o.Share.IsActive {
			total = total.Add(o.Share.UtilitiesPercentage)
		}
	}
	return total
}

// validateIdentity trims and checks name and email. excludeID is skipped in
// the uniqueness check.
func (l *Ledger) validateIdentity(name, email, excludeID string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return "", "", apperr.Invalid("name", "name is required")
	}
	if email == "" {
		return "", "", apperr.Invalid("email", "email is required")
	}
	for _, o := range l.occupants {
		if o.ID != excludeID && strings.EqualFold(o.Email, email) {
			return "", "", apperr.Invalid("email", "email %q is already used", email)
		}
	}
	return name, email, nil
}

func validateShare(share models.Share) error {
	if !share.RentAmount.IsPositive() {
		return apperr.Invalid("rent_amount", "rent amount must be greater than zero")
	}
	if share.UtilitiesPercentage.IsNegative() {
		return apperr.Invalid("utilities_percentage", "utilities percentage cannot be negative")
	}
	if share.UtilitiesPercentage.GreaterThan(UtilitiesCap) {
		return apperr.Invalid("utilities_percentage", "utilities percentage cannot exceed 100")
	}
	return nil
}

// checkCapacity tests candidate against both caps. current is the share
// being replaced, or nil when adding.
func (l *Ledger) checkCapacity(candidate models.Share, current *models.Share) error {
	if !candidate.IsActive {
		return nil
	}

	ownRent, ownUtilities := decimal.Zero, decimal.Zero
	if current != nil && current.IsActive {
		ownRent = current.RentAmount
		ownUtilities = current.UtilitiesPercentage
	}

	rent := calculator.Capacity{Limit: l.budget, Total: l.totalRent(), Own: ownRent}
	if !rent.Fits(candidate.RentAmount) {
		return fmt.Errorf("rent share: %w", apperr.CapacityExceeded(
			"rent_amount", "rent", rent.Limit, rent.Others(), candidate.RentAmount))
	}

	utilities := calculator.Capacity{Limit: UtilitiesCap, Total: l.totalUtilities(), Own: ownUtilities}
	if !utilities.Fits(candidate.UtilitiesPercentage) {
		return fmt.Errorf("utilities share: %w", apperr.CapacityExceeded(
			"utilities_percentage", "utilities", utilities.Limit, utilities.Others(), candidate.UtilitiesPercentage))
	}
	return nil
}

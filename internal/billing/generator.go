package billing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/calculator"
	"github.com/mmynk/roomshare/internal/ledger"
	"github.com/mmynk/roomshare/internal/models"
)

// DefaultDueDay is the day of the month bills fall due.
const DefaultDueDay = 10

// ShareSource supplies the active shares to bill. *ledger.Ledger implements it.
type ShareSource interface {
	ActiveShares() []ledger.ActiveShare
}

// UtilityTotals are the household utility bills for one period. A zero total
// produces no bills of that type.
type UtilityTotals struct {
	Electricity decimal.Decimal
	Water       decimal.Decimal
	Internet    decimal.Decimal
}

func (u UtilityTotals) byType() []struct {
	Type  models.BillType
	Total decimal.Decimal
} {
	return []struct {
		Type  models.BillType
		Total decimal.Decimal
	}{
		{models.BillElectricity, u.Electricity},
		{models.BillWater, u.Water},
		{models.BillInternet, u.Internet},
	}
}

// Generator builds the monthly bill batch.
type Generator struct {
	shares ShareSource
	bills  *Ledger
	dueDay int
	logger *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithDueDay sets the day of the period on which bills fall due.
func WithDueDay(day int) GeneratorOption {
	return func(g *Generator) { g.dueDay = day }
}

// WithGeneratorLogger sets the logger. Defaults to slog.Default().
func WithGeneratorLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates a generator that reads shares and appends to bills.
func NewGenerator(shares ShareSource, bills *Ledger, opts ...GeneratorOption) *Generator {
	g := &Generator{
		shares: shares,
		bills:  bills,
		dueDay: DefaultDueDay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "bill_generator")
	return g
}

// Generate issues the bills for period, given as YYYY-MM, and returns exactly
// the bills it created. issuedBy is the primary occupant's ID.
//
// Every active share gets one rent bill for its effective rent, and one bill
// per utility whose total is positive. Ledger state is trusted as given.
func (g *Generator) Generate(period string, totals UtilityTotals, issuedBy string) ([]*models.Bill, error) {
	p, err := models.ParsePeriod(period)
	if err != nil {
		return nil, apperr.Invalid("month", "%v", err)
	}
	for _, u := range totals.byType() {
		if u.Total.IsNegative() {
			return nil, apperr.Invalid(string(u.Type), "%s total cannot be negative", u.Type)
		}
	}

	due := p.Day(g.dueDay)
	label := p.Label()
	shares := g.shares.ActiveShares()

	var batch []models.Bill
	for _, s := range shares {
		desc := "Monthly rent payment"
		if s.Share.Discount != nil {
			desc += " (with discount)"
		}
		batch = append(batch, models.Bill{
			Type:        models.BillRent,
			Amount:      s.EffectiveRent,
			DueDate:     due,
			Status:      models.BillPending,
			IssuedBy:    issuedBy,
			IssuedTo:    s.OccupantID,
			Month:       label,
			Description: desc,
		})
	}

	for _, u := range totals.byType() {
		if !u.Total.IsPositive() {
			continue
		}
		for _, s := range shares {
			pct := s.Share.UtilitiesPercentage
			batch = append(batch, models.Bill{
				Type:        u.Type,
				Amount:      calculator.UtilityShare(u.Total, pct),
				DueDate:     due,
				Status:      models.BillPending,
				IssuedBy:    issuedBy,
				IssuedTo:    s.OccupantID,
				Month:       label,
				Description: fmt.Sprintf("%s bill share (%s%%)", typeTitle(u.Type), pct.String()),
			})
		}
	}

	created := g.bills.addBatch(batch)
	g.logger.Info("Bills generated",
		"period", p.String(),
		"occupants", len(shares),
		"bills", len(created),
		"due_date", due.String(),
	)
	return created, nil
}

func typeTitle(t models.BillType) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

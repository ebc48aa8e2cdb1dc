package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/ledger"
	"github.com/mmynk/roomshare/internal/models"
)

type staticShares []ledger.ActiveShare

func (s staticShares) ActiveShares() []ledger.ActiveShare { return s }

func activeShare(id, rent, effective, pct string) ledger.ActiveShare {
	return ledger.ActiveShare{
		OccupantID: id,
		Name:       id,
		Share: models.Share{
			RentAmount:          dec(rent),
			UtilitiesPercentage: dec(pct),
			IsActive:            true,
		},
		EffectiveRent: dec(effective),
	}
}

func TestGenerate_ElectricityOnly(t *testing.T) {
	bills := NewLedger(discardLogger())
	shares := staticShares{
		activeShare("alice", "751", "751", "25"),
		activeShare("bob", "483", "483", "75"),
	}
	g := NewGenerator(shares, bills, WithGeneratorLogger(discardLogger()))

	created, err := g.Generate("2025-02", UtilityTotals{Electricity: dec("100")}, "primary")
	require.NoError(t, err)
	require.Len(t, created, 4)

	var electricity []*models.Bill
	for _, b := range created {
		assert.Equal(t, "February 2025", b.Month)
		assert.Equal(t, "2025-02-10", b.DueDate.String())
		assert.Equal(t, models.BillPending, b.Status)
		assert.Equal(t, "primary", b.IssuedBy)
		assert.NotEqual(t, models.BillWater, b.Type)
		assert.NotEqual(t, models.BillInternet, b.Type)
		if b.Type == models.BillElectricity {
			electricity = append(electricity, b)
		}
	}
	require.Len(t, electricity, 2)
	assert.Equal(t, "alice", electricity[0].IssuedTo)
	assert.Equal(t, "25.00", electricity[0].Amount.StringFixed(2))
	assert.Equal(t, "Electricity bill share (25%)", electricity[0].Description)
	assert.Equal(t, "bob", electricity[1].IssuedTo)
	assert.Equal(t, "75.00", electricity[1].Amount.StringFixed(2))

	assert.Len(t, bills.All(), 4)
}

func TestGenerate_RentUsesEffectiveRent(t *testing.T) {
	bills := NewLedger(discardLogger())
	discounted := activeShare("alice", "751", "675.9", "25")
	discounted.Share.Discount = &models.Discount{Kind: models.DiscountPercentage, Value: dec("10"), IsActive: true}
	g := NewGenerator(staticShares{discounted, activeShare("bob", "483", "483", "75")}, bills,
		WithGeneratorLogger(discardLogger()))

	created, err := g.Generate("2025-02", UtilityTotals{}, "primary")
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.True(t, created[0].Amount.Equal(dec("675.9")))
	assert.Equal(t, "Monthly rent payment (with discount)", created[0].Description)
	assert.True(t, created[1].Amount.Equal(dec("483")))
	assert.Equal(t, "Monthly rent payment", created[1].Description)
}

func TestGenerate_UtilityRounding(t *testing.T) {
	bills := NewLedger(discardLogger())
	shares := staticShares{
		activeShare("a", "100", "100", "33.33"),
		activeShare("b", "100", "100", "66.67"),
	}
	g := NewGenerator(shares, bills, WithGeneratorLogger(discardLogger()))

	created, err := g.Generate("2025-02", UtilityTotals{Water: dec("45.5"), Internet: dec("59.99")}, "p")
	require.NoError(t, err)

	amounts := map[string]string{}
	for _, b := range created {
		if b.Type != models.BillRent {
			amounts[string(b.Type)+"/"+b.IssuedTo] = b.Amount.StringFixed(2)
		}
	}
	assert.Equal(t, map[string]string{
		"water/a":    "15.17", // 15.16515
		"water/b":    "30.33", // 30.33485
		"internet/a": "19.99", // 19.994667
		"internet/b": "40.00", // 39.995333
	}, amounts)
}

func TestGenerate_ReturnsOnlyNewBatch(t *testing.T) {
	bills := NewLedger(discardLogger())
	g := NewGenerator(staticShares{activeShare("alice", "751", "751", "100")}, bills,
		WithDueDay(31), WithGeneratorLogger(discardLogger()))

	first, err := g.Generate("2025-01", UtilityTotals{}, "p")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "2025-01-31", first[0].DueDate.String())

	second, err := g.Generate("2025-02", UtilityTotals{}, "p")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "2025-02-28", second[0].DueDate.String(), "due day clamps to month end")
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.Len(t, bills.All(), 2)
}

func TestGenerate_Errors(t *testing.T) {
	bills := NewLedger(discardLogger())
	g := NewGenerator(staticShares{activeShare("alice", "751", "751", "100")}, bills,
		WithGeneratorLogger(discardLogger()))

	_, err := g.Generate("February 2025", UtilityTotals{}, "p")
	assert.True(t, apperr.IsValidation(err))

	_, err = g.Generate("2025-02", UtilityTotals{Water: dec("-1")}, "p")
	assert.True(t, apperr.IsValidation(err))

	assert.Empty(t, bills.All())
}

func TestGenerate_FromShareLedger(t *testing.T) {
	shares := ledger.New(dec("2200"), ledger.WithLogger(discardLogger()),
		ledger.WithClock(func() time.Time { return time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) }))
	alice, err := shares.AddOccupant("Alice", "alice@example.com", models.Share{
		RentAmount: dec("751"), UtilitiesPercentage: dec("25"), IsActive: true,
	})
	require.NoError(t, err)
	_, err = shares.AddOccupant("Bob", "bob@example.com", models.Share{
		RentAmount: dec("483"), UtilitiesPercentage: dec("75"), IsActive: false,
	})
	require.NoError(t, err)

	bills := NewLedger(discardLogger())
	created, err := NewGenerator(shares, bills, WithGeneratorLogger(discardLogger())).
		Generate("2025-02", UtilityTotals{Electricity: dec("100")}, "p")
	require.NoError(t, err)
	require.Len(t, created, 2, "inactive shares are not billed")
	for _, b := range created {
		assert.Equal(t, alice.ID, b.IssuedTo)
	}
}

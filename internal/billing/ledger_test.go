package billing

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/roomshare/internal/apperr"
	"github.com/mmynk/roomshare/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rentBill(to, amount string, due models.Date) models.Bill {
	return models.Bill{
		Type:     models.BillRent,
		Amount:   dec(amount),
		DueDate:  due,
		IssuedBy: "primary",
		IssuedTo: to,
		Month:    "February 2025",
	}
}

func TestLedger_Add(t *testing.T) {
	l := NewLedger(discardLogger())

	added, err := l.Add(rentBill("alice", "751", models.NewDate(2025, time.February, 10)))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, models.BillPending, added.Status)

	got, err := l.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	_, err = l.Get("missing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestLedger_AddValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *models.Bill)
		field  string
	}{
		{name: "unknown type", mutate: func(b *models.Bill) { b.Type = "gas" }, field: "type"},
		{name: "unknown status", mutate: func(b *models.Bill) { b.Status = "lost" }, field: "status"},
		{name: "negative amount", mutate: func(b *models.Bill) { b.Amount = dec("-1") }, field: "amount"},
		{name: "no recipient", mutate: func(b *models.Bill) { b.IssuedTo = "" }, field: "issued_to"},
		{name: "no month", mutate: func(b *models.Bill) { b.Month = "" }, field: "month"},
		{name: "blank month", mutate: func(b *models.Bill) { b.Month = "   " }, field: "month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(discardLogger())
			b := rentBill("alice", "100", models.NewDate(2025, time.February, 10))
			tt.mutate(&b)

			_, err := l.Add(b)
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, l.All())
		})
	}
}

func TestLedger_Update(t *testing.T) {
	l := NewLedger(discardLogger())
	added, err := l.Add(rentBill("alice", "751", models.NewDate(2025, time.February, 10)))
	require.NoError(t, err)

	paid := models.BillPaid
	amount := dec("700")
	updated, ok, err := l.Update(added.ID, BillPatch{Status: &paid, Amount: &amount})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.BillPaid, updated.Status)
	assert.True(t, updated.Amount.Equal(amount))
	assert.Equal(t, added.Type, updated.Type, "unset fields are kept")
	assert.Equal(t, added.DueDate, updated.DueDate)

	updated, ok, err = l.Update("missing", BillPatch{Status: &paid})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, updated)

	bad := models.BillType("gas")
	_, ok, err = l.Update(added.ID, BillPatch{Type: &bad})
	assert.True(t, ok)
	assert.True(t, apperr.IsValidation(err))
	got, _ := l.Get(added.ID)
	assert.Equal(t, models.BillRent, got.Type, "failed update must not mutate")

	empty := ""
	_, ok, err = l.Update(added.ID, BillPatch{Month: &empty})
	assert.True(t, ok)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "month", verr.Field)
	got, _ = l.Get(added.ID)
	assert.Equal(t, "February 2025", got.Month, "month must survive a blanking patch")
}

func TestLedger_Delete(t *testing.T) {
	l := NewLedger(discardLogger())
	added, err := l.Add(rentBill("alice", "751", models.NewDate(2025, time.February, 10)))
	require.NoError(t, err)

	removed, ok := l.Delete(added.ID)
	require.True(t, ok)
	assert.Equal(t, added.ID, removed.ID)
	assert.Empty(t, l.All())

	removed, ok = l.Delete(added.ID)
	assert.False(t, ok)
	assert.Nil(t, removed)
}

func TestLedger_Filters(t *testing.T) {
	l := NewLedger(discardLogger())
	feb := models.NewDate(2025, time.February, 10)

	a, err := l.Add(rentBill("alice", "751", feb))
	require.NoError(t, err)
	b := rentBill("bob", "483", feb)
	b.Status = models.BillPaid
	_, err = l.Add(b)
	require.NoError(t, err)
	c := rentBill("alice", "751", models.NewDate(2025, time.March, 10))
	c.Month = "March 2025"
	_, err = l.Add(c)
	require.NoError(t, err)

	assert.Len(t, l.All(), 3)
	assert.Len(t, l.ByMonth("February 2025"), 2)
	assert.Len(t, l.ByMonth("April 2025"), 0)
	assert.Len(t, l.ByTenant("alice"), 2)
	assert.Equal(t, a.ID, l.ByTenant("alice")[0].ID, "insertion order")
	assert.Len(t, l.ByStatus(models.BillPaid), 1)
	assert.Len(t, l.ByStatus(models.BillOverdue), 0)
}

func TestLedger_MarkOverdue(t *testing.T) {
	l := NewLedger(discardLogger())
	due := models.NewDate(2025, time.February, 10)

	pending, err := l.Add(rentBill("alice", "751", due))
	require.NoError(t, err)
	paid := rentBill("bob", "483", due)
	paid.Status = models.BillPaid
	_, err = l.Add(paid)
	require.NoError(t, err)
	later, err := l.Add(rentBill("carol", "500", models.NewDate(2025, time.March, 10)))
	require.NoError(t, err)

	assert.Empty(t, l.MarkOverdue(due), "bills due on the as-of date are not overdue yet")

	changed := l.MarkOverdue(models.NewDate(2025, time.February, 11))
	require.Len(t, changed, 1)
	assert.Equal(t, pending.ID, changed[0].ID)
	assert.Equal(t, models.BillOverdue, changed[0].Status)

	got, _ := l.Get(later.ID)
	assert.Equal(t, models.BillPending, got.Status)
	assert.Empty(t, l.MarkOverdue(models.NewDate(2025, time.February, 11)))
}

func TestLedger_SummaryAndStatement(t *testing.T) {
	l := NewLedger(discardLogger())
	due := models.NewDate(2025, time.February, 10)

	_, err := l.Add(rentBill("alice", "751", due))
	require.NoError(t, err)
	elec := rentBill("alice", "25.00", models.NewDate(2025, time.February, 5))
	elec.Type = models.BillElectricity
	_, err = l.Add(elec)
	require.NoError(t, err)
	paid := rentBill("bob", "483", due)
	paid.Status = models.BillPaid
	_, err = l.Add(paid)
	require.NoError(t, err)

	summary := l.Summary()
	require.Len(t, summary, 2)
	assert.Equal(t, models.BillRent, summary[0].Type)
	assert.Equal(t, 2, summary[0].Count)
	assert.True(t, summary[0].Total.Equal(dec("1234")))
	assert.Equal(t, 1, summary[0].Paid)
	assert.Equal(t, models.BillElectricity, summary[1].Type)

	st := l.Statement("alice")
	assert.Equal(t, 2, st.BillCount)
	assert.True(t, st.Outstanding.Equal(dec("776")))
	assert.True(t, st.Paid.IsZero())
	assert.Equal(t, "2025-02-05", st.NextDueDate.String())
}

package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomshare/internal/models"
)

// TypeSummary aggregates bills of one type.
type TypeSummary struct {
	Type    models.BillType
	Total   decimal.Decimal
	Count   int
	Pending int
	Paid    int
	Overdue int
}

// Statement is one occupant's outstanding position.
type Statement struct {
	OccupantID string

	// Outstanding is the sum of pending and overdue bills.
	Outstanding decimal.Decimal

	// Paid is the sum of paid bills.
	Paid decimal.Decimal

	// NextDueDate is the earliest due date among unpaid bills; zero if none.
	NextDueDate models.Date

	BillCount int
}

// SummarizeBills groups bills by type. Types without bills are omitted; the
// result follows models.BillTypes order.
func SummarizeBills(bills []*models.Bill) []TypeSummary {
	byType := make(map[models.BillType]*TypeSummary)
	for _, bill := range bills {
		sum, ok := byType[bill.Type]
		if !ok {
			sum = &TypeSummary{Type: bill.Type, Total: decimal.Zero}
			byType[bill.Type] = sum
		}
		sum.Total = sum.Total.Add(bill.Amount)
		sum.Count++
		switch bill.Status {
		case models.BillPending:
			sum.Pending++
		case models.BillPaid:
			sum.Paid++
		case models.BillOverdue:
			sum.Overdue++
		}
	}

	summaries := make([]TypeSummary, 0, len(byType))
	for _, t := range models.BillTypes {
		if sum, ok := byType[t]; ok {
			summaries = append(summaries, *sum)
		}
	}
	return summaries
}

// BuildStatement computes an occupant's position from the bills issued to them.
// Bills for other occupants are ignored.
func BuildStatement(occupantID string, bills []*models.Bill) Statement {
	st := Statement{
		OccupantID:  occupantID,
		Outstanding: decimal.Zero,
		Paid:        decimal.Zero,
	}
	for _, bill := range bills {
		if bill.IssuedTo != occupantID {
			continue
		}
		st.BillCount++
		switch bill.Status {
		case models.BillPaid:
			st.Paid = st.Paid.Add(bill.Amount)
		case models.BillPending, models.BillOverdue:
			st.Outstanding = st.Outstanding.Add(bill.Amount)
			if st.NextDueDate.IsZero() || bill.DueDate.Before(st.NextDueDate) {
				st.NextDueDate = bill.DueDate
			}
		}
	}
	return st
}

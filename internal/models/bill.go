package models

import "github.com/shopspring/decimal"

// BillType is the kind of cost a bill or payment covers.
type BillType string

const (
	BillRent        BillType = "rent"
	BillElectricity BillType = "electricity"
	BillWater       BillType = "water"
	BillInternet    BillType = "internet"
	BillOther       BillType = "other"
)

// BillTypes lists every bill type in display order.
var BillTypes = []BillType{BillRent, BillElectricity, BillWater, BillInternet, BillOther}

// Valid reports whether t is a known bill type.
func (t BillType) Valid() bool {
	for _, known := range BillTypes {
		if t == known {
			return true
		}
	}
	return false
}

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillPending BillStatus = "pending"
	BillPaid    BillStatus = "paid"
	BillOverdue BillStatus = "overdue"
)

// Valid reports whether s is a known bill status.
func (s BillStatus) Valid() bool {
	return s == BillPending || s == BillPaid || s == BillOverdue
}

// Bill is a single dated payable obligation of one type for one occupant.
// Bills are not recomputed when shares or discounts change.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	Type   BillType
	Amount decimal.Decimal

	DueDate Date
	Status  BillStatus

	// IssuedBy is the primary occupant's ID.
	IssuedBy string

	// IssuedTo is the occupant who owes the bill. It may reference a removed
	// occupant; callers render such bills as belonging to an unknown occupant.
	IssuedTo string

	// Month is the billing month label, e.g. "February 2025".
	Month string

	Description string
}

// Clone returns a copy of the bill.
func (b *Bill) Clone() *Bill {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

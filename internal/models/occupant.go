package models

import "github.com/shopspring/decimal"

// Role distinguishes the primary occupant from share-carrying occupants.
type Role string

const (
	// RolePrimary is the lease holder. The primary occupant never carries a Share.
	RolePrimary Role = "primary"
	// RoleOccupant is a co-occupant paying a Share.
	RoleOccupant Role = "occupant"
)

// Occupant represents a resident of the unit.
type Occupant struct {
	// ID is the unique identifier for the occupant (UUID format).
	ID string

	// Name is the display name of the occupant.
	Name string

	// Email is unique across all occupants, compared case-insensitively.
	Email string

	// Role is either RolePrimary or RoleOccupant.
	Role Role

	// Share is the occupant's allocation. Always nil for the primary occupant.
	Share *Share
}

// HasShare reports whether the occupant carries a Share.
func (o *Occupant) HasShare() bool {
	return o.Role == RoleOccupant && o.Share != nil
}

// Clone returns a deep copy of the occupant.
func (o *Occupant) Clone() *Occupant {
	if o == nil {
		return nil
	}
	c := *o
	c.Share = o.Share.Clone()
	return &c
}

// Share is an occupant's portion of the rent and utilities.
type Share struct {
	// RentAmount is the fixed monthly rent this occupant pays before discounts.
	RentAmount decimal.Decimal

	// UtilitiesPercentage is this occupant's percentage (0-100) of each utility bill.
	UtilitiesPercentage decimal.Decimal

	// JoinDate is the date the occupant moved in.
	JoinDate Date

	// IsActive excludes the share from totals and bill generation when false.
	IsActive bool

	// Discount is the optional reduction applied to RentAmount.
	Discount *Discount
}

// Clone returns a deep copy of the share.
func (s *Share) Clone() *Share {
	if s == nil {
		return nil
	}
	c := *s
	c.Discount = s.Discount.Clone()
	return &c
}

// DiscountKind selects how a Discount reduces rent.
type DiscountKind string

const (
	// DiscountPercentage takes Value percent off the rent.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixed takes Value off the rent, floored at zero.
	DiscountFixed DiscountKind = "fixed"
)

// Valid reports whether k is a known discount kind.
func (k DiscountKind) Valid() bool {
	return k == DiscountPercentage || k == DiscountFixed
}

// Discount is a reduction of an occupant's rent.
//
// StartDate and EndDate are advisory: only IsActive gates whether the
// discount applies.
type Discount struct {
	// ID is the unique identifier for the discount (UUID format).
	ID string

	// Kind is DiscountPercentage or DiscountFixed.
	Kind DiscountKind

	// Value is a percentage (0-100) or a fixed money amount, depending on Kind.
	Value decimal.Decimal

	// Reason explains the discount. Required.
	Reason string

	StartDate Date
	EndDate   Date // zero when open-ended

	IsActive bool

	// AppliedBy is the ID of the occupant who attached the discount.
	AppliedBy string

	// AppliedDate is stamped by the ledger when the discount is attached.
	AppliedDate Date
}

// Clone returns a copy of the discount.
func (d *Discount) Clone() *Discount {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

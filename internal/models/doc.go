// Package models defines the core domain models for roomshare.
//
// # Models
//
//   - Occupant: a resident of the unit; either the primary occupant (who holds
//     the lease and issues bills) or an occupant carrying a Share
//   - Share: an occupant's fixed rent amount and percentage of utilities
//   - Discount: an optional reduction of an occupant's rent
//   - Bill: one dated payable obligation of one type for one occupant
//   - PaymentSubmission: an occupant's claim of payment awaiting review
//   - PropertySettings: display details of the rented unit
//
// # Design Principles
//
//  1. **Money is decimal**: amounts and percentages use shopspring/decimal, never float64
//  2. **Optional is a pointer**: a nil Share means "no share"; an inactive share is Share.IsActive == false
//  3. **Avoid circular references**: relationships are ID strings, not pointers
//  4. **Copies out**: ledgers hand out deep copies, so callers cannot mutate ledger state
package models

package model

import (
	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date layout stored on every Transaction.
const DateFormat = "2006-01-02"

// Transaction is a normalized record produced by the importer and handed to a
// record store in bulk.
type Transaction struct {
	Amount      decimal.Decimal // magnitude, never negative
	IsExpense   bool
	Date        string  // YYYY-MM-DD, time-zone naive
	Description string
	Account     *string // nil when absent
	CategoryID  *string // nil when absent or unmatched
	UserID      string
}

// StoredTransaction is a Transaction after a store has assigned it an identity.
type StoredTransaction struct {
	ID      string
	BatchID string
	Transaction
}

// SignedAmount returns the amount with expenses negated.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

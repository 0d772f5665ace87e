package ledger

import (
	"fmt"
	"time"

	"github.com/budgetbook/budgetbook/internal/model"
)

// Rule names a ledger invariant.
type Rule string

const (
	RuleAmount   Rule = "non-negative-amount"
	RuleDate     Rule = "date-in-month"
	RuleUser     Rule = "owner"
	RuleCategory Rule = "known-category"
	RuleUniqueID Rule = "unique-id"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Rule          Rule
	TransactionID string
	Description   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.TransactionID, e.Description)
}

// CategoryChecker tests whether a category ID exists.
type CategoryChecker interface {
	Exists(id string) bool
}

// ValidateTransactions checks a month file's rows: amounts are magnitudes,
// dates fall in year/month, every row belongs to userID (when non-empty),
// category references resolve, and IDs are unique.
func ValidateTransactions(txns []model.StoredTransaction, cats CategoryChecker, userID string, year, month int) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(txns))

	for _, txn := range txns {
		if txn.Amount.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:          RuleAmount,
				TransactionID: txn.ID,
				Description:   fmt.Sprintf("amount %s is negative", txn.Amount),
			})
		}

		d, err := time.Parse(model.DateFormat, txn.Date)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{
				Rule:          RuleDate,
				TransactionID: txn.ID,
				Description:   fmt.Sprintf("invalid date %q", txn.Date),
			})
		case d.Year() != year || int(d.Month()) != month:
			errs = append(errs, ValidationError{
				Rule:          RuleDate,
				TransactionID: txn.ID,
				Description:   fmt.Sprintf("date %s not in %04d-%02d", txn.Date, year, month),
			})
		}

		if userID != "" && txn.UserID != userID {
			errs = append(errs, ValidationError{
				Rule:          RuleUser,
				TransactionID: txn.ID,
				Description:   fmt.Sprintf("belongs to %q, not %q", txn.UserID, userID),
			})
		}

		if txn.CategoryID != nil && cats != nil && !cats.Exists(*txn.CategoryID) {
			errs = append(errs, ValidationError{
				Rule:          RuleCategory,
				TransactionID: txn.ID,
				Description:   fmt.Sprintf("unknown category %s", *txn.CategoryID),
			})
		}

		if seen[txn.ID] {
			errs = append(errs, ValidationError{
				Rule:          RuleUniqueID,
				TransactionID: txn.ID,
				Description:   "duplicate transaction ID",
			})
		}
		seen[txn.ID] = true
	}

	return errs
}

package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/budgetbook/budgetbook/internal/model"
)

// DefaultDescription is used when a row has no description.
const DefaultDescription = "Imported transaction"

// failure is a row-level error; its text is the reason reported to the user.
type failure string

func (f failure) Error() string { return string(f) }

const (
	errMissingValue  failure = "Missing amount or date"
	errInvalidAmount failure = "Invalid amount format"
	errInvalidDate   failure = "Invalid date format"
)

// TypeOverride forces the polarity of every row lacking explicit type text.
type TypeOverride string

const (
	OverrideNone    TypeOverride = ""
	OverrideExpense TypeOverride = "expense"
	OverrideIncome  TypeOverride = "income"
)

// ParseTypeOverride accepts "", "none", "expense" or "income".
func ParseTypeOverride(s string) (TypeOverride, error) {
	switch o := TypeOverride(strings.ToLower(strings.TrimSpace(s))); o {
	case OverrideNone, OverrideExpense, OverrideIncome:
		return o, nil
	case "none":
		return OverrideNone, nil
	default:
		return OverrideNone, fmt.Errorf("invalid type override %q: want expense or income", s)
	}
}

var (
	expenseText = regexp.MustCompile(`(?i)expense|debit|withdrawal|payment`)
	incomeText  = regexp.MustCompile(`(?i)income|credit|deposit|paycheck|salary`)
)

// Transform converts rows into transactions for userID. Each row is handled
// independently; a failing row is recorded in the summary and skipped.
// Transform performs no I/O and returns the same output for the same input.
func Transform(rows []Row, m Mapping, userID string, categories []model.Category, override TypeOverride) ([]model.Transaction, Summary) {
	lookup := newCategoryLookup(categories)

	var txns []model.Transaction
	summary := Summary{TotalRows: len(rows)}
	for i, row := range rows {
		txn, err := transformRow(row, m, lookup, override)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{RowIndex: i, Reason: err.Error()})
			continue
		}
		txn.UserID = userID
		txns = append(txns, txn)
		if IsAmbiguousDate(row.Get(m.Get(FieldDate)).Value) {
			summary.AmbiguousDates = append(summary.AmbiguousDates, i)
		}
	}
	summary.Imported = len(txns)
	summary.Skipped = len(summary.Errors)
	return txns, summary
}

func transformRow(row Row, m Mapping, categories categoryLookup, override TypeOverride) (model.Transaction, error) {
	amountCell := row.Get(m.Get(FieldAmount))
	dateCell := row.Get(m.Get(FieldDate))
	if amountCell.IsBlank() || dateCell.IsBlank() {
		return model.Transaction{}, errMissingValue
	}

	amount, err := ParseAmount(amountCell.Value)
	if err != nil {
		return model.Transaction{}, errInvalidAmount
	}

	date, err := NormalizeDate(dateCell.Value)
	if err != nil {
		return model.Transaction{}, errInvalidDate
	}

	isExpense := amount.IsNegative()
	switch override {
	case OverrideExpense:
		isExpense = true
	case OverrideIncome:
		isExpense = false
	}
	if typeCell := row.Get(m.Get(FieldType)); !typeCell.IsBlank() {
		switch {
		case expenseText.MatchString(typeCell.Value):
			isExpense = true
		case incomeText.MatchString(typeCell.Value):
			isExpense = false
		}
	}

	description := strings.TrimSpace(row.Get(m.Get(FieldDescription)).Value)
	if description == "" {
		description = DefaultDescription
	}

	return model.Transaction{
		Amount:      amount.Abs(),
		IsExpense:   isExpense,
		Date:        date,
		Description: description,
		Account:     optionalText(row.Get(m.Get(FieldAccount))),
		CategoryID:  categories.resolve(row.Get(m.Get(FieldCategory))),
	}, nil
}

func optionalText(c Cell) *string {
	s := strings.TrimSpace(c.Value)
	if s == "" {
		return nil
	}
	return &s
}

// categoryLookup maps lowercased category names to IDs; the first category
// with a given name wins.
type categoryLookup map[string]string

func newCategoryLookup(categories []model.Category) categoryLookup {
	lookup := make(categoryLookup, len(categories))
	for _, c := range categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if _, ok := lookup[key]; !ok {
			lookup[key] = c.ID
		}
	}
	return lookup
}

func (l categoryLookup) resolve(c Cell) *string {
	name := strings.ToLower(strings.TrimSpace(c.Value))
	if name == "" {
		return nil
	}
	id, ok := l[name]
	if !ok {
		return nil
	}
	return &id
}

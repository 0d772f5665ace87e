package categories

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/budgetbook/budgetbook/internal/model"
)

// Header is the CSV header for categories.csv.
var Header = []string{"category_id", "name", "kind"}

const (
	numFields = 3
	colID     = 0
	colName   = 1
	colKind   = 2
)

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range cats {
		if err := cw.Write(MarshalCategory(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(c model.Category) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colName] = c.Name
	row[colKind] = string(c.Kind)
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Category{}, fmt.Errorf("empty category_id")
	}
	if record[colName] == "" {
		return model.Category{}, fmt.Errorf("category %s has no name", record[colID])
	}

	kind := model.CategoryKind(record[colKind])
	switch kind {
	case model.CategoryKindExpense, model.CategoryKindIncome:
	default:
		return model.Category{}, fmt.Errorf("category %s: unknown kind %q", record[colID], record[colKind])
	}

	return model.Category{
		ID:   record[colID],
		Name: record[colName],
		Kind: kind,
	}, nil
}

package model

// CategoryKind classifies budget categories.
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
)

// Category is a row in categories.csv or the categories table.
type Category struct {
	ID   string
	Name string
	Kind CategoryKind
}

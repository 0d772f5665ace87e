package categories

import (
	"github.com/budgetbook/budgetbook/internal/id"
	"github.com/budgetbook/budgetbook/internal/model"
)

// New returns a Category whose ID is derived from its name.
func New(name string, kind model.CategoryKind) model.Category {
	return model.Category{ID: id.CategoryID(name), Name: name, Kind: kind}
}

// DefaultCategories returns the starter budget categories for a new workspace.
func DefaultCategories() []model.Category {
	return []model.Category{
		New("Salary", model.CategoryKindIncome),
		New("Other Income", model.CategoryKindIncome),
		New("Rent", model.CategoryKindExpense),
		New("Utilities", model.CategoryKindExpense),
		New("Groceries", model.CategoryKindExpense),
		New("Dining Out", model.CategoryKindExpense),
		New("Transportation", model.CategoryKindExpense),
		New("Health", model.CategoryKindExpense),
		New("Entertainment", model.CategoryKindExpense),
		New("Subscriptions", model.CategoryKindExpense),
		New("Shopping", model.CategoryKindExpense),
	}
}

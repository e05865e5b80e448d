package domain

import "time"

// Expense categories
const (
	ExpenseRepair      = "REPAIR"
	ExpenseMaintenance = "MAINTENANCE"
	ExpenseUtilities   = "UTILITIES"
	ExpenseInsurance   = "INSURANCE"
	ExpenseTax         = "TAX"
	ExpenseOther       = "OTHER"
)

// PropertyExpense is a cost recorded against a property
type PropertyExpense struct {
	ID          int64
	PropertyID  string
	Description string
	Amount      float64
	Date        time.Time
	Category    string
	Notes       string
}

// ExpenseRepository defines data access for property expenses
type ExpenseRepository interface {
	Save(e *PropertyExpense) error
	ListForProperty(propertyID string) ([]*PropertyExpense, error)
	TotalForProperty(propertyID string) (float64, error)
}

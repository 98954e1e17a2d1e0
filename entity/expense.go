package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	ExpenseIngredients ExpenseCategory = "ingredients"
	ExpenseUtilities   ExpenseCategory = "utilities"
	ExpenseRent        ExpenseCategory = "rent"
	ExpenseSalary      ExpenseCategory = "salary"
	ExpenseDelivery    ExpenseCategory = "delivery"
	ExpenseMarketing   ExpenseCategory = "marketing"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseSupplies    ExpenseCategory = "supplies"
	ExpenseOther       ExpenseCategory = "other"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseIngredients, ExpenseUtilities, ExpenseRent, ExpenseSalary,
		ExpenseDelivery, ExpenseMarketing, ExpenseMaintenance, ExpenseSupplies, ExpenseOther:
		return true
	}
	return false
}

func (c ExpenseCategory) Display() string {
	switch c {
	case ExpenseIngredients:
		return "Ingredientes"
	case ExpenseUtilities:
		return "Utilidades (Água, Luz, Gás)"
	case ExpenseRent:
		return "Aluguel"
	case ExpenseSalary:
		return "Salários"
	case ExpenseDelivery:
		return "Entrega"
	case ExpenseMarketing:
		return "Marketing"
	case ExpenseMaintenance:
		return "Manutenção"
	case ExpenseSupplies:
		return "Suprimentos"
	default:
		return "Outros"
	}
}

// Expense is a flat cash-outflow record, unrelated to orders.
type Expense struct {
	gorm.Model
	UserID      *uint           `json:"user_id"`
	User        *User           `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Category    ExpenseCategory `gorm:"type:varchar(20);default:other" json:"category"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Notes       string          `json:"notes"`
}

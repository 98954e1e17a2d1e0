package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pos-backend/pkg/apperrors"
)

// OrderItem keeps the unit price captured when the item was added, not
// the live catalog price.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	Order     Order           `json:"-"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Product   Product         `json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// The Before hooks enforce the paid-order gate on every item write, no
// matter which path issued it. The After hooks are the second
// recomputation layer: even a write that never went through the order
// service keeps the owning order's total in sync.

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error { return i.rejectIfPaid(tx) }
func (i *OrderItem) BeforeUpdate(tx *gorm.DB) error { return i.rejectIfPaid(tx) }
func (i *OrderItem) BeforeDelete(tx *gorm.DB) error { return i.rejectIfPaid(tx) }

func (i *OrderItem) AfterCreate(tx *gorm.DB) error { return i.recompute(tx) }
func (i *OrderItem) AfterUpdate(tx *gorm.DB) error { return i.recompute(tx) }
func (i *OrderItem) AfterDelete(tx *gorm.DB) error { return i.recompute(tx) }

func (i *OrderItem) rejectIfPaid(tx *gorm.DB) error {
	paid, err := OrderIsPaid(tx, i.OrderID)
	if err != nil {
		return err
	}
	if paid {
		return apperrors.ErrOrderAlreadyPaid
	}
	return nil
}

func (i *OrderItem) recompute(tx *gorm.DB) error {
	_, err := RecomputeOrderTotal(tx, i.OrderID)
	return err
}

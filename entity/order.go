package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pos-backend/pkg/apperrors"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Display() string {
	switch s {
	case OrderPending:
		return "Pendente"
	case OrderConfirmed:
		return "Confirmado"
	case OrderPreparing:
		return "Preparando"
	case OrderReady:
		return "Pronto"
	case OrderDelivered:
		return "Entregue"
	case OrderCancelled:
		return "Cancelado"
	default:
		return string(s)
	}
}

// Order owns its line items. Total is derived: it is never written by a
// client, only by RecomputeOrderTotal.
type Order struct {
	gorm.Model
	Status          OrderStatus     `gorm:"type:varchar(20);default:pending" json:"status"`
	IsOpen          bool            `json:"is_open"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	DeliveryFee     decimal.Decimal `gorm:"type:decimal(10,2)" json:"delivery_fee"`
	Notes           string          `json:"notes"`
	DeliveryAddress string          `json:"delivery_address"`

	// Operator who opened the order. There are no customer accounts in a
	// walk-up restaurant.
	CreatedByID *uint `json:"created_by"`
	CreatedBy   *User `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	Items   []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"-"`
}

// IsPaid reports whether a completed payment exists. Requires Payment to
// be preloaded; prefer OrderIsPaid when only the id is at hand.
func (o *Order) IsPaid() bool {
	return o.Payment != nil && o.Payment.Status == PaymentCompleted
}

// OrderIsPaid checks the payment state straight from the database.
func OrderIsPaid(tx *gorm.DB, orderID uint) (bool, error) {
	var n int64
	err := tx.Model(&Payment{}).
		Where("order_id = ? AND status = ?", orderID, PaymentCompleted).
		Count(&n).Error
	return n > 0, err
}

// BeforeUpdate rejects every ordinary write to a paid order. The
// recompute path uses UpdateColumn, which skips hooks, so the derived
// total stays maintainable even after payment.
func (o *Order) BeforeUpdate(tx *gorm.DB) error {
	if o.ID == 0 {
		return nil
	}
	paid, err := OrderIsPaid(tx, o.ID)
	if err != nil {
		return err
	}
	if paid {
		return apperrors.ErrOrderAlreadyPaid
	}
	return nil
}

// RecomputeOrderTotal sums price × quantity over the order's live items
// and persists the result through the hook-bypassing write path. It is
// idempotent and must run inside the same transaction as the item
// mutation that made it necessary.
func RecomputeOrderTotal(tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	var items []OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}

	err := tx.Model(&Order{}).
		Where("id = ?", orderID).
		UpdateColumn("total", total).Error
	return total, err
}

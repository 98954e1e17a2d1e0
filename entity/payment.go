package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodPix          PaymentMethod = "pix"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodPix, MethodBankTransfer:
		return true
	}
	return false
}

func (m PaymentMethod) Display() string {
	switch m {
	case MethodCash:
		return "Dinheiro"
	case MethodCreditCard:
		return "Cartão de Crédito"
	case MethodDebitCard:
		return "Cartão de Débito"
	case MethodPix:
		return "PIX"
	case MethodBankTransfer:
		return "Transferência Bancária"
	default:
		return string(m)
	}
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

func (s PaymentStatus) Display() string {
	switch s {
	case PaymentPending:
		return "Pendente"
	case PaymentProcessing:
		return "Processando"
	case PaymentCompleted:
		return "Concluído"
	case PaymentFailed:
		return "Falhou"
	case PaymentRefunded:
		return "Reembolsado"
	default:
		return string(s)
	}
}

// Payment is one-to-one with Order. Amount is written once at creation
// (order total plus delivery fee) and never re-derived afterwards.
type Payment struct {
	gorm.Model
	OrderID       uint            `gorm:"uniqueIndex;not null" json:"order_id"`
	Order         Order           `json:"-"`
	Method        PaymentMethod   `gorm:"type:varchar(20)" json:"method"`
	Status        PaymentStatus   `gorm:"type:varchar(20);default:pending" json:"status"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryMarmitas        ProductCategory = "marmitas"
	CategoryBebidas         ProductCategory = "bebidas"
	CategorySobremesas      ProductCategory = "sobremesas"
	CategoryAcompanhamentos ProductCategory = "acompanhamentos"
	CategoryOutros          ProductCategory = "outros"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryMarmitas, CategoryBebidas, CategorySobremesas, CategoryAcompanhamentos, CategoryOutros:
		return true
	}
	return false
}

func (c ProductCategory) Display() string {
	switch c {
	case CategoryMarmitas:
		return "Marmitas"
	case CategoryBebidas:
		return "Bebidas"
	case CategorySobremesas:
		return "Sobremesas"
	case CategoryAcompanhamentos:
		return "Acompanhamentos"
	default:
		return "Outros"
	}
}

// Product is the catalog entry. Order items snapshot its price at add
// time; editing a product never touches existing orders.
type Product struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Category    ProductCategory `gorm:"type:varchar(20);default:outros" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	// No column default on purpose: gorm skips zero-valued fields that
	// carry one, which would turn an insert of false into true. The
	// service layer owns the default.
	IsAvailable bool `json:"is_available"`

	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
}

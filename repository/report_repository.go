package repository

import (
	"time"

	"gorm.io/gorm"

	"pos-backend/entity"
)

// ReportRepository fetches the row sets the report service aggregates
// over. Sums stay in Go so money math runs on decimals, not on whatever
// the database coerces a numeric column into.
type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

type PaymentFilter struct {
	Status entity.PaymentStatus
	Method entity.PaymentMethod
	// PaidFrom/PaidTo filter on paid_at, CreatedFrom/CreatedTo on
	// created_at; reports use one or the other, never both.
	PaidFrom, PaidTo       *time.Time
	CreatedFrom, CreatedTo *time.Time
}

func (r *ReportRepository) Payments(f PaymentFilter) ([]entity.Payment, error) {
	q := r.DB.Preload("Order").Order("created_at")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("method = ?", f.Method)
	}
	if f.PaidFrom != nil {
		q = q.Where("paid_at >= ?", *f.PaidFrom)
	}
	if f.PaidTo != nil {
		q = q.Where("paid_at <= ?", *f.PaidTo)
	}
	if f.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		q = q.Where("created_at <= ?", *f.CreatedTo)
	}
	var payments []entity.Payment
	err := q.Find(&payments).Error
	return payments, err
}

type ReportOrderFilter struct {
	From, To *time.Time
	Status   entity.OrderStatus
	IsOpen   *bool
}

func (r *ReportRepository) Orders(f ReportOrderFilter) ([]entity.Order, error) {
	q := r.DB.Preload("Payment").Preload("CreatedBy").Order("created_at")
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.IsOpen != nil {
		q = q.Where("is_open = ?", *f.IsOpen)
	}
	var orders []entity.Order
	err := q.Find(&orders).Error
	return orders, err
}

// PaidOrders returns orders whose payment completed inside the window,
// with items and payment loaded; the product report builds its
// delivery-fee split from these.
func (r *ReportRepository) PaidOrders(from, to *time.Time) ([]entity.Order, error) {
	sub := r.DB.Model(&entity.Payment{}).Select("order_id").
		Where("status = ?", entity.PaymentCompleted)
	if from != nil {
		sub = sub.Where("paid_at >= ?", *from)
	}
	if to != nil {
		sub = sub.Where("paid_at <= ?", *to)
	}

	var orders []entity.Order
	err := r.DB.
		Preload("Items.Product").
		Preload("Payment").
		Where("id IN (?)", sub).
		Find(&orders).Error
	return orders, err
}

// AllOrderItems feeds the dashboard's top-products list, which has
// always counted items regardless of payment state.
func (r *ReportRepository) AllOrderItems() ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Preload("Product").Find(&items).Error
	return items, err
}

func (r *ReportRepository) Expenses(from, to *time.Time, category entity.ExpenseCategory) ([]entity.Expense, error) {
	q := r.DB.Preload("User").Order("created_at")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var expenses []entity.Expense
	err := q.Find(&expenses).Error
	return expenses, err
}

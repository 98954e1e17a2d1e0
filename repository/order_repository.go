package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pos-backend/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// Get loads an order with items (product included) and payment.
func (r *OrderRepository) Get(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items.Product").
		Preload("Payment").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderFilter struct {
	// OnlyOpen narrows to is_open=true (the cashier view).
	OnlyOpen bool
	// PaymentStatus: "completed", "pending" (pending or no payment),
	// "none" (no payment), or any concrete payment status value.
	PaymentStatus string
}

func (r *OrderRepository) List(f OrderFilter) ([]entity.Order, error) {
	q := r.DB.Preload("Items.Product").Preload("Payment").Order("created_at DESC")

	if f.OnlyOpen {
		q = q.Where("is_open = ?", true)
	}

	withPayment := r.DB.Model(&entity.Payment{}).Select("order_id")
	switch f.PaymentStatus {
	case "":
	case "completed":
		q = q.Where("id IN (?)", r.DB.Model(&entity.Payment{}).Select("order_id").
			Where("status = ?", entity.PaymentCompleted))
	case "pending":
		q = q.Where("(id IN (?) OR id NOT IN (?))",
			r.DB.Model(&entity.Payment{}).Select("order_id").Where("status = ?", entity.PaymentPending),
			withPayment)
	case "none":
		q = q.Where("id NOT IN (?)", withPayment)
	default:
		q = q.Where("id IN (?)", r.DB.Model(&entity.Payment{}).Select("order_id").
			Where("status = ?", f.PaymentStatus))
	}

	var orders []entity.Order
	err := q.Find(&orders).Error
	return orders, err
}

// ListForDeletion fetches candidates for (bulk) deletion with their
// payment loaded, so the caller can apply the paid filter in one place.
func (r *OrderRepository) ListForDeletion(ids []uint, all, onlyOpen bool) ([]entity.Order, error) {
	q := r.DB.Preload("Payment")
	if !all {
		q = q.Where("id IN ?", ids)
	}
	if onlyOpen {
		q = q.Where("is_open = ?", true)
	}
	var orders []entity.Order
	err := q.Find(&orders).Error
	return orders, err
}

// DeleteByIDs removes orders and their items. Order deletion has no
// model-level gate (the paid check belongs to the caller, because of the
// include_paid escape hatch), but items must not fire their own hooks
// here: a paid order deleted under the escape hatch would be blocked by
// the item gate.
func (r *OrderRepository) DeleteByIDs(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := tx.Session(&gorm.Session{SkipHooks: true}).
		Where("order_id IN ?", ids).
		Delete(&entity.OrderItem{}).Error
	if err != nil {
		return err
	}
	err = tx.Session(&gorm.Session{SkipHooks: true}).
		Where("order_id IN ?", ids).
		Delete(&entity.Payment{}).Error
	if err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&entity.Order{}).Error
}

func (r *OrderRepository) UpdateFields(tx *gorm.DB, o *entity.Order, fields map[string]any) error {
	return tx.Model(o).Updates(fields).Error
}

// ---------------- Items ----------------

func (r *OrderRepository) GetItem(id uint) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := r.DB.Preload("Product").Preload("Order.Payment").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderRepository) CreateItem(tx *gorm.DB, item *entity.OrderItem) error {
	return tx.Create(item).Error
}

// SaveItem omits the loaded associations so only the item row is
// written; the hooks still run.
func (r *OrderRepository) SaveItem(tx *gorm.DB, item *entity.OrderItem) error {
	return tx.Omit(clause.Associations).Save(item).Error
}

func (r *OrderRepository) DeleteItem(tx *gorm.DB, item *entity.OrderItem) error {
	return tx.Delete(item).Error
}

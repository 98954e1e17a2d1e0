package repository

import (
	"gorm.io/gorm"

	"pos-backend/entity"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) FindByID(id uint) (*entity.Payment, error) {
	var p entity.Payment
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) List() ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.DB.Order("created_at DESC").Find(&payments).Error
	return payments, err
}

// UpdateStatus writes only the transition fields, leaving the amount
// snapshot untouched.
func (r *PaymentRepository) UpdateStatus(p *entity.Payment, fields map[string]any) error {
	return r.DB.Model(p).Updates(fields).Error
}

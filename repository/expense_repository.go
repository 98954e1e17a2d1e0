package repository

import (
	"time"

	"gorm.io/gorm"

	"pos-backend/entity"
)

type ExpenseRepository struct {
	DB *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

func (r *ExpenseRepository) Create(e *entity.Expense) error {
	return r.DB.Create(e).Error
}

func (r *ExpenseRepository) FindByID(id uint) (*entity.Expense, error) {
	var e entity.Expense
	if err := r.DB.Preload("User").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

type ExpenseFilter struct {
	From     *time.Time
	To       *time.Time
	Category entity.ExpenseCategory
}

func (r *ExpenseRepository) List(f ExpenseFilter) ([]entity.Expense, error) {
	q := r.DB.Preload("User").Order("created_at DESC")
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var expenses []entity.Expense
	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Save(e *entity.Expense) error {
	return r.DB.Save(e).Error
}

func (r *ExpenseRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Expense{}, id).Error
}

package repository

import (
	"gorm.io/gorm"

	"pos-backend/entity"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) FindByID(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAvailableByID is the add-item lookup: a missing or unavailable
// product is the same failure to the caller.
func (r *ProductRepository) FindAvailableByID(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.Where("id = ? AND is_available = ?", id, true).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(onlyAvailable bool) ([]entity.Product, error) {
	var products []entity.Product
	q := r.DB.Order("name")
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *ProductRepository) Save(p *entity.Product) error {
	return r.DB.Save(p).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Product{}, id).Error
}

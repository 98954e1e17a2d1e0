package services

import (
	"github.com/shopspring/decimal"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
	"pos-backend/pkg/authz"
	"pos-backend/repository"
)

type ProductService struct {
	repo *repository.ProductRepository
}

func NewProductService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

type ProductReq struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available"`
}

func (s *ProductService) validate(req *ProductReq) (*entity.Product, error) {
	fields := map[string][]string{}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		fields["price"] = []string{"o preço deve ser maior que zero"}
	}
	category := entity.ProductCategory(req.Category)
	if category == "" {
		category = entity.CategoryOutros
	}
	if !category.Valid() {
		fields["category"] = []string{"categoria inválida"}
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("dados inválidos para o produto", fields)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Price:       req.Price,
		IsAvailable: available,
	}, nil
}

func (s *ProductService) Create(req *ProductReq) (*entity.Product, error) {
	p, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// List: the admin sees the whole catalog, the cashier only what can be
// sold right now.
func (s *ProductService) List(actor authz.Authorizer) ([]entity.Product, error) {
	return s.repo.List(!actor.IsAdmin())
}

func (s *ProductService) Get(actor authz.Authorizer, id uint) (*entity.Product, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !p.IsAvailable {
		return nil, apperrors.NotFound("produto", id)
	}
	return p, nil
}

func (s *ProductService) Update(id uint, req *ProductReq) (*entity.Product, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	updated, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	p.Name = updated.Name
	p.Description = updated.Description
	p.Category = updated.Category
	p.Price = updated.Price
	p.IsAvailable = updated.IsAvailable
	if err := s.repo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

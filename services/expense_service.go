package services

import (
	"github.com/shopspring/decimal"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
	"pos-backend/repository"
)

type ExpenseService struct {
	repo *repository.ExpenseRepository
}

func NewExpenseService(repo *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo}
}

type ExpenseReq struct {
	Category    string          `json:"category"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes"`
}

func validateExpense(req *ExpenseReq) (entity.ExpenseCategory, error) {
	fields := map[string][]string{}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		fields["amount"] = []string{"o valor deve ser maior que zero"}
	}
	category := entity.ExpenseCategory(req.Category)
	if category == "" {
		category = entity.ExpenseOther
	}
	if !category.Valid() {
		fields["category"] = []string{"categoria inválida"}
	}
	if len(fields) > 0 {
		return "", apperrors.Validation("dados inválidos para a despesa", fields)
	}
	return category, nil
}

func (s *ExpenseService) Create(actorID uint, req *ExpenseReq) (*entity.Expense, error) {
	category, err := validateExpense(req)
	if err != nil {
		return nil, err
	}

	expense := &entity.Expense{
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
		Notes:       req.Notes,
	}
	if actorID != 0 {
		expense.UserID = &actorID
	}
	if err := s.repo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) List(startDate, endDate, category string) ([]entity.Expense, error) {
	from, to, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.repo.List(repository.ExpenseFilter{
		From:     from,
		To:       to,
		Category: entity.ExpenseCategory(category),
	})
}

func (s *ExpenseService) Get(id uint) (*entity.Expense, error) {
	return s.repo.FindByID(id)
}

func (s *ExpenseService) Update(id uint, req *ExpenseReq) (*entity.Expense, error) {
	expense, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	category, err := validateExpense(req)
	if err != nil {
		return nil, err
	}

	expense.Category = category
	expense.Description = req.Description
	expense.Amount = req.Amount
	expense.Notes = req.Notes
	if err := s.repo.Save(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Delete(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

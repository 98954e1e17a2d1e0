package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
	"pos-backend/pkg/authz"
	"pos-backend/repository"
)

// UserService is the admin-only user management surface.
type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

type CreateUserReq struct {
	Username        string   `json:"username" binding:"required"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Password        string   `json:"password" binding:"required"`
	PasswordConfirm string   `json:"password_confirm" binding:"required"`
	IsActive        *bool    `json:"is_active"`
	Groups          []string `json:"groups"`
}

type UpdateUserReq struct {
	Email     *string   `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Password  *string   `json:"password"`
	IsActive  *bool     `json:"is_active"`
	Groups    *[]string `json:"groups"`
}

func (s *UserService) List() ([]entity.User, error) {
	return s.repo.List()
}

func (s *UserService) Get(id uint) (*entity.User, error) {
	return s.repo.FindByID(id)
}

func (s *UserService) Create(req *CreateUserReq) (*entity.User, error) {
	if len(req.Password) < 6 {
		return nil, apperrors.Validation("erro de validação ao criar usuário", map[string][]string{
			"password": {"a senha deve ter pelo menos 6 caracteres"},
		})
	}
	if req.Password != req.PasswordConfirm {
		return nil, apperrors.Validation("erro de validação ao criar usuário", map[string][]string{
			"password": {"as senhas não coincidem"},
		})
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	count, err := s.repo.CountByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.BusinessRule("nome de usuário ou email já está em uso")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	caps := authz.FromGroupNames(req.Groups)
	if caps == 0 {
		// Same default the self-registration path applies.
		caps = authz.CapCashier
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Password:     string(hashed),
		IsActive:     active,
		Capabilities: caps,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(id uint, req *UpdateUserReq) (*entity.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, apperrors.Validation("erro de validação ao atualizar usuário", map[string][]string{
				"password": {"a senha deve ter pelo menos 6 caracteres"},
			})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Groups != nil {
		user.Capabilities = authz.FromGroupNames(*req.Groups)
	}

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

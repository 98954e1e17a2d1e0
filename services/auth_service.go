package services

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pos-backend/entity"
	"pos-backend/pkg/apperrors"
	"pos-backend/pkg/authz"
	"pos-backend/pkg/logger"
	"pos-backend/repository"
	"pos-backend/utils"
)

type AuthService struct {
	userRepo   *repository.UserRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   repo,
		jwtSecret:  secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type RegisterReq struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// Register creates an operator account. Self-registered users always get
// the cashier capability, never admin.
func (s *AuthService) Register(req *RegisterReq) (*entity.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

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

	count, err := s.userRepo.CountByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.BusinessRule("nome de usuário ou email já está em uso")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Password:     string(hashed),
		IsActive:     true,
		Capabilities: authz.CapCashier,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.L().Info("user registered",
		zap.String("layer", "service"),
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username))
	return user, nil
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login verifies credentials and issues the access/refresh pair.
func (s *AuthService) Login(username, password string) (*TokenPair, *entity.User, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.Validation("usuário ou senha inválidos", nil)
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.Validation("usuário ou senha inválidos", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperrors.Validation("usuário ou senha inválidos", nil)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := utils.ParseToken(refreshToken, s.jwtSecret)
	if err != nil || claims.TokenType != utils.TokenRefresh {
		return "", apperrors.Validation("token de atualização inválido", nil)
	}

	// Re-read the user so a revoked account or changed capabilities take
	// effect on the next access token.
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return "", apperrors.Validation("token de atualização inválido", nil)
	}
	if !user.IsActive {
		return "", apperrors.Validation("token de atualização inválido", nil)
	}

	return utils.GenerateToken(user.ID, user.Capabilities, user.IsSuperuser,
		utils.TokenAccess, s.jwtSecret, s.accessTTL)
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *AuthService) issuePair(user *entity.User) (*TokenPair, error) {
	access, err := utils.GenerateToken(user.ID, user.Capabilities, user.IsSuperuser,
		utils.TokenAccess, s.jwtSecret, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(user.ID, user.Capabilities, user.IsSuperuser,
		utils.TokenRefresh, s.jwtSecret, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

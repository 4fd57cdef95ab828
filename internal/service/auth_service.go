package service

import (
	"errors"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/pkg/jwt"

	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	Admin *model.Admin `json:"admin"`
}

type AuthService interface {
	Login(req *LoginRequest) (*LoginResult, error)
}

type authService struct {
	adminRepo repository.AdminRepository
}

func NewAuthService(adminRepo repository.AdminRepository) AuthService {
	return &authService{adminRepo: adminRepo}
}

func (s *authService) Login(req *LoginRequest) (*LoginResult, error) {
	admin, err := s.adminRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid email or password")
		}
		return nil, apperr.Persistence(err)
	}

	if !admin.CheckPassword(req.Password) {
		return nil, apperr.Validation("invalid email or password")
	}

	token, err := jwt.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return &LoginResult{Token: token, Admin: admin}, nil
}

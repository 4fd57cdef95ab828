package repository

import (
	"go-warehouse-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(admin *model.Admin) error
	FindByEmail(email string) (*model.Admin, error)
	FindByID(id uuid.UUID) (*model.Admin, error)
}

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db}
}

func (r *adminRepo) Create(admin *model.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepo) FindByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.First(&admin, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) FindByID(id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.First(&admin, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

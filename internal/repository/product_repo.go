package repository

import (
	"go-warehouse-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductFilter narrows the product listing
type ProductFilter struct {
	Search     string
	CategoryID uuid.UUID
	Deleted    bool // true lists only soft-deleted products (recovery view)
	Page       int
	PageSize   int
}

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDUnscoped(id uuid.UUID) (*model.Product, error)
	FindAllUnscoped() ([]model.Product, error)
	Update(product *model.Product) error
	SoftDelete(id uuid.UUID) (*model.Product, error)
	Recover(id uuid.UUID) (*model.Product, error)
	PermanentDelete(tx *gorm.DB, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.Model(&model.Product{})
	if filter.Deleted {
		q = q.Unscoped().Where("deleted_at IS NOT NULL")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR model LIKE ?", like, like)
	}
	if filter.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		q = q.Limit(filter.PageSize).Offset(offset)
	}

	err := q.Preload("Category").Preload("Stock").
		Order("created_at DESC").
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Stock").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDUnscoped also resolves soft-deleted products (recovery, permanent delete)
func (r *productRepo) FindByIDUnscoped(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Unscoped().First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAllUnscoped is the price list for the report engine: soft-deleted
// products still price their historical sales, only permanently deleted
// products drop out.
func (r *productRepo) FindAllUnscoped() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Unscoped().Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) SoftDelete(id uuid.UUID) (*model.Product, error) {
	product, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Delete(&model.Product{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Recover(id uuid.UUID) (*model.Product, error) {
	product, err := r.FindByIDUnscoped(id)
	if err != nil {
		return nil, err
	}
	err = r.db.Unscoped().Model(&model.Product{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
	if err != nil {
		return nil, err
	}
	product.DeletedAt = gorm.DeletedAt{}
	return product, nil
}

func (r *productRepo) PermanentDelete(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Unscoped().Delete(&model.Product{}, "id = ?", id).Error
}

package repository

import (
	"time"

	"go-warehouse-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	Create(tx *gorm.DB, stock *model.Stock) error
	FindByProductID(tx *gorm.DB, productID uuid.UUID) (*model.Stock, error)
	FindAllActive() ([]model.Stock, error)
	AddQuantity(tx *gorm.DB, productID uuid.UUID, quantity int) (int, error)
	ApplyDelta(tx *gorm.DB, productID uuid.UUID, delta int) (int, int64, error)
	UpdateMinAlert(productID uuid.UUID, minAlert int) error
	DeleteByProductID(tx *gorm.DB, productID uuid.UUID) error
	TotalQuantity() (int64, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) Create(tx *gorm.DB, stock *model.Stock) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(stock).Error
}

func (r *stockRepo) FindByProductID(tx *gorm.DB, productID uuid.UUID) (*model.Stock, error) {
	if tx == nil {
		tx = r.db
	}
	var stock model.Stock
	err := tx.First(&stock, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// FindAllActive lists stock rows whose product is not soft-deleted,
// most recently moved first.
func (r *stockRepo) FindAllActive() ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.
		Joins("JOIN products ON products.id = stocks.product_id AND products.deleted_at IS NULL").
		Preload("Product").Preload("Product.Category").
		Order("stocks.updated_at DESC").
		Find(&stocks).Error
	return stocks, err
}

// AddQuantity increases the quantity, creating the stock row on a product's
// first BUY. Insert and increment are one upsert statement, so two concurrent
// first BUYs cannot collide on the product_id unique index.
func (r *stockRepo) AddQuantity(tx *gorm.DB, productID uuid.UUID, quantity int) (int, error) {
	if tx == nil {
		tx = r.db
	}
	stock := model.Stock{
		ProductID:        productID,
		Quantity:         quantity,
		MinAlertQuantity: model.DefaultMinAlertQuantity,
	}
	err := tx.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": time.Now(),
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "quantity"}}},
	).Create(&stock).Error
	return stock.Quantity, err
}

// ApplyDelta adjusts the quantity with a single conditional update. The
// non-negativity bound lives in the WHERE clause and the resulting quantity
// comes back in the statement's RETURNING set, so a concurrent movement can
// neither drive the quantity below zero nor leak into the reported value.
// Zero rows affected means either no stock row exists or the movement was
// out of bounds, which the caller distinguishes with a follow-up read.
func (r *stockRepo) ApplyDelta(tx *gorm.DB, productID uuid.UUID, delta int) (int, int64, error) {
	if tx == nil {
		tx = r.db
	}
	var stock model.Stock
	res := tx.Model(&stock).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "quantity"}}}).
		Where("product_id = ? AND quantity + ? >= 0", productID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return stock.Quantity, res.RowsAffected, res.Error
}

func (r *stockRepo) UpdateMinAlert(productID uuid.UUID, minAlert int) error {
	return r.db.Model(&model.Stock{}).
		Where("product_id = ?", productID).
		Update("min_alert_quantity", minAlert).Error
}

func (r *stockRepo) DeleteByProductID(tx *gorm.DB, productID uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Delete(&model.Stock{}, "product_id = ?", productID).Error
}

func (r *stockRepo) TotalQuantity() (int64, error) {
	var total int64
	err := r.db.Model(&model.Stock{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

package repository

import (
	"time"

	"go-warehouse-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFilter narrows the transaction listing
type TransactionFilter struct {
	Type      model.MovementType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

type TransactionRepository interface {
	Create(tx *gorm.DB, txn *model.Transaction) error
	FindAll(filter TransactionFilter) ([]model.Transaction, int64, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindForReport(startDate, endDate *time.Time) ([]model.Transaction, error)
	FindRecent(limit int) ([]model.Transaction, error)
	Delete(id uuid.UUID) error
	DeleteByProductID(tx *gorm.DB, productID uuid.UUID) error
	SumTotalByType(movementType model.MovementType, currency model.Currency) (decimal.Decimal, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, txn *model.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(txn).Error
}

func (r *transactionRepo) FindAll(filter TransactionFilter) ([]model.Transaction, int64, error) {
	var txns []model.Transaction
	var total int64

	q := r.db.Model(&model.Transaction{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
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

	err := q.Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, total, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&txn, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindForReport loads the raw transaction log for the report engine,
// oldest first so bucketing is deterministic.
func (r *transactionRepo) FindForReport(startDate, endDate *time.Time) ([]model.Transaction, error) {
	var txns []model.Transaction
	q := r.db.Model(&model.Transaction{})
	if startDate != nil {
		q = q.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("created_at <= ?", *endDate)
	}
	err := q.Order("created_at ASC").Find(&txns).Error
	return txns, err
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var txns []model.Transaction
	err := r.db.Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Transaction{}, "id = ?", id).Error
}

func (r *transactionRepo) DeleteByProductID(tx *gorm.DB, productID uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Delete(&model.Transaction{}, "product_id = ?", productID).Error
}

func (r *transactionRepo) SumTotalByType(movementType model.MovementType, currency model.Currency) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.Model(&model.Transaction{}).
		Where("type = ? AND currency = ?", movementType, currency).
		Select("COALESCE(SUM(total), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

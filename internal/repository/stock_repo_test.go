package repository

import (
	"testing"

	"go-warehouse-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Stock{},
	))
	return db
}

func seedRepoProduct(t *testing.T, db *gorm.DB) *model.Product {
	t.Helper()

	category := &model.Category{Name: "Parts", IsActive: true}
	require.NoError(t, db.Create(category).Error)

	product := &model.Product{
		Name:       "Screen",
		Model:      "A1",
		CategoryID: category.ID,
		BuyPrice:   decimal.NewFromInt(100),
		SellPrice:  decimal.NewFromInt(150),
		Currency:   model.CurrencyIQD,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestAddQuantityCreatesThenAccumulates(t *testing.T) {
	db := newRepoDB(t)
	repo := NewStockRepo(db)
	product := seedRepoProduct(t, db)

	// first call inserts the row
	quantity, err := repo.AddQuantity(nil, product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, quantity)

	var stock model.Stock
	require.NoError(t, db.First(&stock, "product_id = ?", product.ID).Error)
	assert.Equal(t, model.DefaultMinAlertQuantity, stock.MinAlertQuantity)

	// second call takes the conflict path and increments in place
	quantity, err = repo.AddQuantity(nil, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, quantity)

	var count int64
	require.NoError(t, db.Model(&model.Stock{}).
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "upsert must never duplicate the stock row")
}

func TestApplyDeltaReturnsResultingQuantity(t *testing.T) {
	db := newRepoDB(t)
	repo := NewStockRepo(db)
	product := seedRepoProduct(t, db)

	_, err := repo.AddQuantity(nil, product.ID, 10)
	require.NoError(t, err)

	// the reported quantity comes from the update statement itself
	quantity, affected, err := repo.ApplyDelta(nil, product.ID, -4)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.Equal(t, 6, quantity)

	var stock model.Stock
	require.NoError(t, db.First(&stock, "product_id = ?", product.ID).Error)
	assert.Equal(t, 6, stock.Quantity)
}

func TestApplyDeltaRejectsOutOfBounds(t *testing.T) {
	db := newRepoDB(t)
	repo := NewStockRepo(db)
	product := seedRepoProduct(t, db)

	_, err := repo.AddQuantity(nil, product.ID, 3)
	require.NoError(t, err)

	_, affected, err := repo.ApplyDelta(nil, product.ID, -10)
	require.NoError(t, err)
	assert.Zero(t, affected)

	var stock model.Stock
	require.NoError(t, db.First(&stock, "product_id = ?", product.ID).Error)
	assert.Equal(t, 3, stock.Quantity)
}

func TestApplyDeltaUnknownProduct(t *testing.T) {
	db := newRepoDB(t)
	repo := NewStockRepo(db)

	_, affected, err := repo.ApplyDelta(nil, uuid.New(), -1)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

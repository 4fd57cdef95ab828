package service

import (
	"testing"

	"go-warehouse-admin/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store per test so state never leaks
// between cases.
func newTestDB(t *testing.T) *gorm.DB {
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
		&model.Transaction{},
		&model.ActivityLog{},
		&model.Admin{},
	))
	return db
}

// createProduct inserts a product without a stock row, so ledger tests can
// exercise the no-stock paths explicitly.
func createProduct(t *testing.T, db *gorm.DB, name string, buyPrice, sellPrice int64) *model.Product {
	t.Helper()

	category := &model.Category{Name: "Category for " + name, IsActive: true}
	require.NoError(t, db.Create(category).Error)

	product := &model.Product{
		Name:       name,
		Model:      "M-" + name,
		CategoryID: category.ID,
		BuyPrice:   decimal.NewFromInt(buyPrice),
		SellPrice:  decimal.NewFromInt(sellPrice),
		Currency:   model.CurrencyIQD,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createStock(t *testing.T, db *gorm.DB, product *model.Product, quantity, minAlert int) *model.Stock {
	t.Helper()

	stock := &model.Stock{
		ProductID:        product.ID,
		Quantity:         quantity,
		MinAlertQuantity: minAlert,
	}
	require.NoError(t, db.Create(stock).Error)
	return stock
}

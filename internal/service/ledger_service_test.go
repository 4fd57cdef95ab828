package service

import (
	"testing"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLedger(db *gorm.DB) LedgerService {
	return NewLedgerService(
		db,
		repository.NewStockRepo(db),
		repository.NewTransactionRepo(db),
		repository.NewActivityLogRepo(db),
		nil,
	)
}

func countRows(t *testing.T, db *gorm.DB, dest interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(dest).Count(&count).Error)
	return count
}

func TestApplyMovementBuyCreatesStock(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Screen", 100, 150)

	result, err := ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID,
		Type:      model.MovementBuy,
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Quantity)

	var stock model.Stock
	require.NoError(t, db.First(&stock, "product_id = ?", product.ID).Error)
	assert.Equal(t, 5, stock.Quantity)
	assert.Equal(t, model.DefaultMinAlertQuantity, stock.MinAlertQuantity)
}

func TestApplyMovementSellWithoutStockRejected(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Screen", 100, 150)

	_, err := ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID,
		Type:      model.MovementSell,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInsufficientStock(err))

	// rejection leaves no trace
	assert.EqualValues(t, 0, countRows(t, db, &model.Stock{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.Transaction{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.ActivityLog{}))
}

func TestApplyMovementScenario(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Product A", 100, 150)

	// BUY 10: 0 -> 10
	result, err := ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.MovementBuy, Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Quantity)

	// SELL 4: 10 -> 6, priced at the product's sell price
	result, err = ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.MovementSell, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, result.Quantity)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, model.MovementSell, result.Transaction.Type)
	assert.Equal(t, 4, result.Transaction.Quantity)
	assert.True(t, result.Transaction.Price.Equal(decimal.NewFromInt(150)),
		"price %s", result.Transaction.Price)
	assert.True(t, result.Transaction.Total.Equal(decimal.NewFromInt(600)),
		"total %s", result.Transaction.Total)

	// SELL 20 against 6 in stock: rejected, zero side effects
	txnsBefore := countRows(t, db, &model.Transaction{})
	logsBefore := countRows(t, db, &model.ActivityLog{})

	_, err = ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.MovementSell, Quantity: 20,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsInsufficientStock(err))

	var stock model.Stock
	require.NoError(t, db.First(&stock, "product_id = ?", product.ID).Error)
	assert.Equal(t, 6, stock.Quantity)
	assert.Equal(t, txnsBefore, countRows(t, db, &model.Transaction{}))
	assert.Equal(t, logsBefore, countRows(t, db, &model.ActivityLog{}))
}

func TestApplyMovementLedgerInvariant(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Battery", 20, 35)

	moves := []struct {
		movementType model.MovementType
		quantity     int
	}{
		{model.MovementBuy, 12},
		{model.MovementSell, 3},
		{model.MovementBuy, 5},
		{model.MovementSell, 8},
		{model.MovementSell, 1},
	}
	for _, m := range moves {
		_, err := ledger.ApplyMovement(&MovementRequest{
			ProductID: product.ID, Type: m.movementType, Quantity: m.quantity,
		})
		require.NoError(t, err)
	}

	var txns []model.Transaction
	require.NoError(t, db.Find(&txns, "product_id = ?", product.ID).Error)
	net := 0
	for _, txn := range txns {
		if txn.Type == model.MovementBuy {
			net += txn.Quantity
		} else {
			net -= txn.Quantity
		}
	}

	var stock model.Stock
	require.NoError(t, db.First(&stock, "product_id = ?", product.ID).Error)
	assert.Equal(t, net, stock.Quantity, "stock must equal net of its transaction history")
}

func TestApplyMovementValidation(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Cable", 2, 5)
	createStock(t, db, product, 10, 5)

	testCases := []struct {
		name string
		req  MovementRequest
	}{
		{"zero quantity", MovementRequest{ProductID: product.ID, Type: model.MovementBuy, Quantity: 0}},
		{"negative quantity", MovementRequest{ProductID: product.ID, Type: model.MovementSell, Quantity: -3}},
		{"bad type", MovementRequest{ProductID: product.ID, Type: "SWAP", Quantity: 1}},
		{"missing product id", MovementRequest{Type: model.MovementBuy, Quantity: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txnsBefore := countRows(t, db, &model.Transaction{})

			_, err := ledger.ApplyMovement(&tc.req)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err), "got %v", err)

			var stock model.Stock
			require.NoError(t, db.First(&stock, "product_id = ?", product.ID).Error)
			assert.Equal(t, 10, stock.Quantity)
			assert.Equal(t, txnsBefore, countRows(t, db, &model.Transaction{}))
		})
	}
}

func TestApplyMovementUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)

	_, err := ledger.ApplyMovement(&MovementRequest{
		ProductID: uuid.New(), Type: model.MovementBuy, Quantity: 1,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestApplyMovementSoftDeletedProductRejected(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Old Screen", 100, 150)
	createStock(t, db, product, 10, 5)
	require.NoError(t, db.Delete(&model.Product{}, "id = ?", product.ID).Error)

	_, err := ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.MovementSell, Quantity: 1,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestApplyMovementExplicitPriceWins(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Adapter", 10, 18)

	result, err := ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID,
		Type:      model.MovementBuy,
		Quantity:  3,
		Price:     decimal.NewFromInt(9),
	})
	require.NoError(t, err)
	assert.True(t, result.Transaction.Price.Equal(decimal.NewFromInt(9)))
	assert.True(t, result.Transaction.Total.Equal(decimal.NewFromInt(27)))
}

func TestApplyMovementWritesActivityLog(t *testing.T) {
	db := newTestDB(t)
	ledger := newLedger(db)
	product := createProduct(t, db, "Glass", 1, 3)

	_, err := ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.MovementBuy, Quantity: 8,
	})
	require.NoError(t, err)
	_, err = ledger.ApplyMovement(&MovementRequest{
		ProductID: product.ID, Type: model.MovementSell, Quantity: 2,
	})
	require.NoError(t, err)

	var logs []model.ActivityLog
	require.NoError(t, db.Order("created_at ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, model.ActionStockAdd, logs[0].Action)
	assert.Equal(t, model.ActionStockReduce, logs[1].Action)
	assert.Equal(t, "stock", logs[0].EntityType)
	assert.Equal(t, product.ID.String(), logs[0].EntityID)
	assert.Contains(t, logs[1].Details, `"new_quantity":6`)
	assert.Contains(t, logs[1].Details, `"old_quantity":8`)
}

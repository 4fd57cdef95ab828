package service

import (
	"testing"

	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatusClassification(t *testing.T) {
	testCases := []struct {
		name     string
		quantity int
		minAlert int
		want     model.StockStatus
	}{
		{"negative is out of stock", -2, 5, model.StatusOutOfStock},
		{"zero is out of stock", 0, 5, model.StatusOutOfStock},
		{"at threshold is low", 5, 5, model.StatusLowStock},
		{"below threshold is low", 3, 5, model.StatusLowStock},
		{"above threshold is healthy", 6, 5, model.StatusInStock},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stock := model.Stock{Quantity: tc.quantity, MinAlertQuantity: tc.minAlert}
			assert.Equal(t, tc.want, stock.Status())
		})
	}
}

func TestGetAlerts(t *testing.T) {
	db := newTestDB(t)
	alerts := NewAlertService(repository.NewStockRepo(db))

	empty := createProduct(t, db, "Empty", 10, 20)
	createStock(t, db, empty, 0, 5)
	low := createProduct(t, db, "Low", 10, 20)
	createStock(t, db, low, 3, 5)
	healthy := createProduct(t, db, "Healthy", 10, 20)
	createStock(t, db, healthy, 50, 5)

	result, err := alerts.GetAlerts()
	require.NoError(t, err)

	require.Len(t, result.Alerts, 2)
	// lowest quantity first
	assert.Equal(t, empty.ID, result.Alerts[0].Stock.ProductID)
	assert.Equal(t, model.StatusOutOfStock, result.Alerts[0].Status)
	assert.Equal(t, low.ID, result.Alerts[1].Stock.ProductID)
	assert.Equal(t, model.StatusLowStock, result.Alerts[1].Status)

	assert.Equal(t, 1, result.Summary.OutOfStock)
	assert.Equal(t, 1, result.Summary.LowStock)
	assert.Equal(t, 2, result.Summary.Total)
}

func TestGetAlertsIgnoresSoftDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	alerts := NewAlertService(repository.NewStockRepo(db))

	retired := createProduct(t, db, "Retired", 10, 20)
	createStock(t, db, retired, 0, 5)
	require.NoError(t, db.Delete(&model.Product{}, "id = ?", retired.ID).Error)

	result, err := alerts.GetAlerts()
	require.NoError(t, err)
	assert.Empty(t, result.Alerts)
	assert.Equal(t, 0, result.Summary.Total)
}

func TestGetAlertsLimited(t *testing.T) {
	db := newTestDB(t)
	alerts := NewAlertService(repository.NewStockRepo(db))

	for i, quantity := range []int{0, 1, 2, 3} {
		product := createProduct(t, db, "P"+string(rune('A'+i)), 10, 20)
		createStock(t, db, product, quantity, 5)
	}

	limited, err := alerts.GetAlertsLimited(2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, 0, limited[0].Stock.Quantity)
	assert.Equal(t, 1, limited[1].Stock.Quantity)
}

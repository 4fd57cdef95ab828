package service

import (
	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalProducts  int64           `json:"totalProducts"`
	TotalStock     int64           `json:"totalStock"`
	TotalBuyValue  decimal.Decimal `json:"totalBuyValue"`
	TotalSellValue decimal.Decimal `json:"totalSellValue"`
	TotalProfit    decimal.Decimal `json:"totalProfit"`
}

type DashboardData struct {
	Stats              DashboardStats      `json:"stats"`
	LowStockAlerts     []StockAlert        `json:"lowStockAlerts"`
	RecentTransactions []model.Transaction `json:"recentTransactions"`
}

// DashboardService aggregates the overview widgets. Transaction totals in
// USD are normalized to IQD at the current exchange rate.
type DashboardService interface {
	GetDashboard() (*DashboardData, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	txnRepo     repository.TransactionRepository
	alerts      AlertService
	currency    CurrencyService
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	txnRepo repository.TransactionRepository,
	alerts AlertService,
	currency CurrencyService,
) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		txnRepo:     txnRepo,
		alerts:      alerts,
		currency:    currency,
	}
}

func (s *dashboardService) GetDashboard() (*DashboardData, error) {
	_, totalProducts, err := s.productRepo.FindAll(repository.ProductFilter{})
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	totalStock, err := s.stockRepo.TotalQuantity()
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	buyValue, err := s.sumNormalized(model.MovementBuy)
	if err != nil {
		return nil, err
	}
	sellValue, err := s.sumNormalized(model.MovementSell)
	if err != nil {
		return nil, err
	}

	recent, err := s.txnRepo.FindRecent(5)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	lowStock, err := s.alerts.GetAlertsLimited(10)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Stats: DashboardStats{
			TotalProducts:  totalProducts,
			TotalStock:     totalStock,
			TotalBuyValue:  buyValue,
			TotalSellValue: sellValue,
			TotalProfit:    sellValue.Sub(buyValue),
		},
		LowStockAlerts:     lowStock,
		RecentTransactions: recent,
	}, nil
}

func (s *dashboardService) sumNormalized(movementType model.MovementType) (decimal.Decimal, error) {
	iqd, err := s.txnRepo.SumTotalByType(movementType, model.CurrencyIQD)
	if err != nil {
		return decimal.Zero, apperr.Persistence(err)
	}
	usd, err := s.txnRepo.SumTotalByType(movementType, model.CurrencyUSD)
	if err != nil {
		return decimal.Zero, apperr.Persistence(err)
	}
	return iqd.Add(s.currency.ToIQD(usd, model.CurrencyUSD)), nil
}

package service

import (
	"sort"

	"go-warehouse-admin/internal/apperr"
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"
)

// StockAlert is one low- or out-of-stock product
type StockAlert struct {
	Stock  model.Stock       `json:"stock"`
	Status model.StockStatus `json:"status"`
}

type AlertSummary struct {
	OutOfStock int `json:"outOfStock"`
	LowStock   int `json:"lowStock"`
	Total      int `json:"total"`
}

type AlertsResult struct {
	Alerts  []StockAlert `json:"alerts"`
	Summary AlertSummary `json:"summary"`
}

// AlertService classifies the current stock state of active products.
// Pure read over Stock + Product; no persistence of its own.
type AlertService interface {
	GetAlerts() (*AlertsResult, error)
	GetAlertsLimited(limit int) ([]StockAlert, error)
}

type alertService struct {
	stockRepo repository.StockRepository
}

func NewAlertService(stockRepo repository.StockRepository) AlertService {
	return &alertService{stockRepo: stockRepo}
}

func (s *alertService) GetAlerts() (*AlertsResult, error) {
	stocks, err := s.stockRepo.FindAllActive()
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	result := &AlertsResult{Alerts: []StockAlert{}}
	for _, stock := range stocks {
		status := stock.Status()
		if status == model.StatusInStock {
			continue
		}
		result.Alerts = append(result.Alerts, StockAlert{Stock: stock, Status: status})
		if status == model.StatusOutOfStock {
			result.Summary.OutOfStock++
		} else {
			result.Summary.LowStock++
		}
	}
	result.Summary.Total = len(result.Alerts)

	// Most urgent first
	sort.SliceStable(result.Alerts, func(i, j int) bool {
		return result.Alerts[i].Stock.Quantity < result.Alerts[j].Stock.Quantity
	})

	return result, nil
}

// GetAlertsLimited returns at most limit alerts, for the dashboard widget.
func (s *alertService) GetAlertsLimited(limit int) ([]StockAlert, error) {
	result, err := s.GetAlerts()
	if err != nil {
		return nil, err
	}
	if len(result.Alerts) > limit {
		return result.Alerts[:limit], nil
	}
	return result.Alerts, nil
}

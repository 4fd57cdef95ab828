package model

import "github.com/google/uuid"

// DefaultMinAlertQuantity is applied when a stock row is created implicitly
// by the first BUY movement of a product.
const DefaultMinAlertQuantity = 5

// Stock is the materialized quantity for one product. It is mutated only by
// the ledger's apply-movement path; every change is paired with a Transaction.
type Stock struct {
	BaseModel
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Product          *Product  `json:"product,omitempty"`
	Quantity         int       `gorm:"not null;default:0" json:"quantity"`
	MinAlertQuantity int       `gorm:"not null;default:5" json:"min_alert_quantity"`
}

// StockStatus classification for alerting
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

func (s *Stock) Status() StockStatus {
	switch {
	case s.Quantity <= 0:
		return StatusOutOfStock
	case s.Quantity <= s.MinAlertQuantity:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

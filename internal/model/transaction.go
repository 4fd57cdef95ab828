package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementBuy  MovementType = "BUY"
	MovementSell MovementType = "SELL"
)

// Transaction is the immutable record of one stock movement. Rows are only
// ever inserted; the administrative delete path removes them without touching
// the paired stock quantity.
type Transaction struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	Type      MovementType    `gorm:"type:varchar(10);not null" json:"type"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Total     decimal.Decimal `gorm:"type:numeric;not null" json:"total"` // snapshot price * quantity
	Currency  Currency        `gorm:"type:varchar(3);default:'IQD'" json:"currency"`
}

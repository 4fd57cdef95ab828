package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Currency string

const (
	CurrencyIQD Currency = "IQD"
	CurrencyUSD Currency = "USD"
)

type Product struct {
	BaseModel
	Name       string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Model      string          `gorm:"type:varchar(100);not null" json:"model" validate:"required"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category   *Category       `json:"category,omitempty" validate:"-"`
	BuyPrice   decimal.Decimal `gorm:"type:numeric;default:0" json:"buy_price"`
	SellPrice  decimal.Decimal `gorm:"type:numeric;default:0" json:"sell_price"`
	Currency   Currency        `gorm:"type:varchar(3);default:'IQD'" json:"currency" validate:"omitempty,currency"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"deleted_at"`

	// One stock row per product, created alongside the product
	Stock *Stock `json:"stock,omitempty" validate:"-"`
}

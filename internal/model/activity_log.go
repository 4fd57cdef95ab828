package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity log actions
const (
	ActionCreate          = "CREATE"
	ActionUpdate          = "UPDATE"
	ActionDelete          = "DELETE"
	ActionRecover         = "RECOVER"
	ActionPermanentDelete = "PERMANENT_DELETE"
	ActionStockAdd        = "STOCK_ADD"
	ActionStockReduce     = "STOCK_REDUCE"
)

// ActivityLog is an append-only audit trail entry. Details holds a free-form
// JSON payload describing the change.
type ActivityLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType string    `gorm:"type:varchar(50);not null;index" json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(64)" json:"entity_id"`
	Details    string    `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

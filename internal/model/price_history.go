package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceHistory keeps one row per admin price edit on a product.
type PriceHistory struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OldPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NewPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OldCostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NewCostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ChangedBy    string          `gorm:"not null"`
	CreatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization (price_histories → price_history).
func (PriceHistory) TableName() string { return "price_history" }

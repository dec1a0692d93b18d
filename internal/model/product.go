package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock status labels. Status is denormalized onto the product row for cheap
// reads; StockStatus is the only function allowed to compute it.
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"

	// LowStockThreshold is fixed: stock in [1, 5] is "Low Stock".
	LowStockThreshold = 5
)

// StockStatus derives the status label from a stock quantity.
// Every write path that changes stock must store StockStatus(newStock)
// alongside it — no code path may set status independently.
func StockStatus(stock int) string {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Product is a catalog item with on-hand stock and a derived status label.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Out of Stock'"`
	ImageURL    *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

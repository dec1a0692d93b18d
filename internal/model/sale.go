package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SaleCompleted = "Completed"
	SaleCredit    = "Credit"
	SaleRefunded  = "Refunded"
)

// Sale records one product sold to one customer.
//
// Amount is the unit price actually charged (may differ from Product.Price).
// CostPrice is a snapshot of the product's cost at sale time — later cost
// changes never affect historical profit figures.
//
// Credit-financed line items are stored as one Sale row per line item with
// Quantity set, same as the cash path, linked back via CreditID.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreditID   *uuid.UUID `gorm:"type:uuid;index"`
	Date      time.Time       `gorm:"not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null;default:1"`
	CostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status    string          `gorm:"type:varchar(20);not null;default:'Completed'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Product  *Product  `gorm:"foreignKey:ProductID"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Credit statuses.
const (
	CreditPending = "Pending"
	CreditPartial = "Partial"
	CreditCleared = "Cleared"
	CreditOverdue = "Overdue"
)

// Credit is money extended to a customer, optionally bundled with
// stock-consuming line items at creation time.
type Credit struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DueDate    time.Time       `gorm:"not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'Pending'"`
	Notes      *string
	Terms      *string
	InterestRate *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Reference    *string
	ImageURL     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

// Outstanding is the balance still owed on this credit.
func (c *Credit) Outstanding() decimal.Decimal {
	return c.Amount.Sub(c.AmountPaid)
}

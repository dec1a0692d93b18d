package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds contact details plus the running debt balance.
//
// TotalDebt is maintained incrementally: every credit mutation applies a signed
// delta via an atomic UPDATE rather than recomputing the sum of outstanding
// credits. The reconciliation job audits the balance against the credit rows.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Phone     *string
	Email     *string
	Address   *string
	TotalDebt decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	ProductID  string `form:"product_id"  validate:"omitempty,uuid"`
	Status     string `form:"status"` // Completed | Credit | Refunded | all
	From       string `form:"from"`   // YYYY-MM-DD
	To         string `form:"to"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// RecordSaleRequest creates a cash sale. Amount is the unit price actually
// charged, which may differ from the catalog price.
type RecordSaleRequest struct {
	CustomerID string          `json:"customer_id" validate:"required,uuid"`
	ProductID  string          `json:"product_id"  validate:"required,uuid"`
	Date       time.Time       `json:"date"        validate:"required"`
	Amount     decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Quantity   int             `json:"quantity"    validate:"required,min=1"`
	Status     string          `json:"status"      validate:"omitempty,oneof=Completed Credit"`
}

type ReverseSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

type SaleResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	CreditID     *string         `json:"credit_id,omitempty"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Status       string          `json:"status"`
	CreatedAt    string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

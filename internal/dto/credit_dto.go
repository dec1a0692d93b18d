package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditFilter is bound from the query string of GET /v1/credits.
type CreditFilter struct {
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Status     string `form:"status"`     // Pending | Partial | Cleared | Overdue | all
	DueBefore  string `form:"due_before"` // YYYY-MM-DD
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// CreditItemRequest is one product+quantity+price line in a credit purchase.
type CreditItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Price     decimal.Decimal `json:"price"      validate:"required,gt=0"`
}

type RecordCreditRequest struct {
	CustomerID   string              `json:"customer_id"   validate:"required,uuid"`
	Amount       decimal.Decimal     `json:"amount"        validate:"required,gt=0"`
	AmountPaid   decimal.Decimal     `json:"amount_paid"   validate:"min=0"`
	DueDate      time.Time           `json:"due_date"      validate:"required"`
	Status       string              `json:"status"        validate:"omitempty,oneof=Pending Partial Cleared Overdue"`
	Notes        *string             `json:"notes"`
	Terms        *string             `json:"terms"`
	InterestRate *decimal.Decimal    `json:"interest_rate" validate:"omitempty,min=0"`
	Reference    *string             `json:"reference"`
	ImageURL     *string             `json:"image_url"`
	Items        []CreditItemRequest `json:"items"         validate:"omitempty,dive"`
}

// UpdateCreditRequest patches a credit. All fields optional; the debt ledger
// delta is derived from the outstanding balance before and after the patch.
type UpdateCreditRequest struct {
	Amount       *decimal.Decimal `json:"amount"        validate:"omitempty,gt=0"`
	AmountPaid   *decimal.Decimal `json:"amount_paid"   validate:"omitempty,min=0"`
	DueDate      *time.Time       `json:"due_date"`
	Status       *string          `json:"status"        validate:"omitempty,oneof=Pending Partial Cleared Overdue"`
	Notes        *string          `json:"notes"`
	Terms        *string          `json:"terms"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"omitempty,min=0"`
	Reference    *string          `json:"reference"`
	ImageURL     *string          `json:"image_url"`
}

type CreditResponse struct {
	ID           string           `json:"id"`
	CustomerID   string           `json:"customer_id"`
	CustomerName string           `json:"customer_name,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	AmountPaid   decimal.Decimal  `json:"amount_paid"`
	Outstanding  decimal.Decimal  `json:"outstanding"`
	DueDate      string           `json:"due_date"`
	Status       string           `json:"status"`
	Notes        *string          `json:"notes,omitempty"`
	Terms        *string          `json:"terms,omitempty"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
	Reference    *string          `json:"reference,omitempty"`
	ImageURL     *string          `json:"image_url,omitempty"`
	CreatedAt    string           `json:"created_at"`
}

type CreditListResponse struct {
	Data  []CreditResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

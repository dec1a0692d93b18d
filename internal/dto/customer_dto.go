package dto

import "github.com/shopspring/decimal"

// CustomerFilter is bound from the query string of GET /v1/customers.
type CustomerFilter struct {
	Search   string `form:"search"`
	Active   string `form:"active"` // "true" (default) | "false" | "all"
	WithDebt bool   `form:"with_debt"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
}

type CustomerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     *string         `json:"phone,omitempty"`
	Email     *string         `json:"email,omitempty"`
	Address   *string         `json:"address,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	Active    bool            `json:"active"`
	CreatedAt string          `json:"created_at"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ReconcileRequest triggers an on-demand debt ledger audit.
type ReconcileRequest struct {
	// Fix applies the recomputed balance when drift is found.
	Fix bool `json:"fix"`
}

// ReconcileResult reports one customer's ledger audit.
type ReconcileResult struct {
	CustomerID string          `json:"customer_id"`
	Recorded   decimal.Decimal `json:"recorded"`   // customers.total_debt
	Computed   decimal.Decimal `json:"computed"`   // Σ outstanding, non-cleared credits
	Drift      decimal.Decimal `json:"drift"`      // recorded − computed
	Corrected  bool            `json:"corrected"`
}

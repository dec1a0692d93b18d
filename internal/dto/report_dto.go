package dto

import "github.com/shopspring/decimal"

// ProfitReportFilter is bound from the query string of GET /v1/reports/profit.
type ProfitReportFilter struct {
	From string `form:"from"` // YYYY-MM-DD inclusive; default: first of month
	To   string `form:"to"`   // YYYY-MM-DD exclusive; default: tomorrow
}

// ProfitReportResponse aggregates sales over a period using each sale's cost
// snapshot, so later cost-price edits never rewrite history.
type ProfitReportResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	SaleCount int64           `json:"sale_count"`
}

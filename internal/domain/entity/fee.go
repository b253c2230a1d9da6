package entity

import "github.com/shopspring/decimal"

// Fee is an additive charge applied to a cart
type Fee struct {
	Amount decimal.Decimal `json:"amount"`
	Label  string          `json:"label"`
}

// AddFeeRequest is the body accepted when adding a fee to a cart
type AddFeeRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Label  string          `json:"label"`
	ID     string          `json:"id,omitempty"`
}

// FeeTotalResponse is returned by the cart fee total endpoint
type FeeTotalResponse struct {
	Total   decimal.Decimal `json:"total"`
	HasFees bool            `json:"has_fees"`
}

package dto

import "github.com/shopspring/decimal"

// ApplyPromoRequest carries the user-entered promocode.
type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required"`
}

// ApplyPromoResult reports the simulated lookup outcome. Discount is zero
// when the code is rejected.
type ApplyPromoResult struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Discount decimal.Decimal `json:"discount"`
	Label    string          `json:"label,omitempty"`
}

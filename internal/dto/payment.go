package dto

import "github.com/noah-isme/enroll-flow-api/internal/models"

// SetPaymentTypeRequest switches how the effective price is settled.
type SetPaymentTypeRequest struct {
	PaymentType models.PaymentType `json:"payment_type" validate:"required,oneof=full installment deposit"`
}

// SetInstallmentTypeRequest records whether the chosen bank supports
// installments; "not-allowed" demotes an installment choice to deposit.
type SetInstallmentTypeRequest struct {
	InstallmentType models.InstallmentType `json:"installment_type" validate:"required,oneof=allowed not-allowed"`
}

// SetPaymentOptionRequest picks the card/FPX branch.
type SetPaymentOptionRequest struct {
	PaymentOption models.PaymentCategory `json:"payment_option" validate:"required,oneof=card fpx"`
}

// SetPaymentMethodRequest selects a concrete method within the option.
type SetPaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// SetInstallmentProviderRequest selects a bank; the plan resets with it.
type SetInstallmentProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
}

// SetInstallmentPlanRequest sets provider and tenure together so the plan
// never points at a stale provider.
type SetInstallmentPlanRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
	Months     int    `json:"months" validate:"required,gt=0"`
}

// SetTermsRequest toggles terms acceptance.
type SetTermsRequest struct {
	Accepted bool `json:"accepted"`
}

// PaymentValidationResult reports whether a legal payment combination has
// been selected, with a section-level message when it has not.
type PaymentValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

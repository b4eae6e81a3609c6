package dto

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/enroll-flow-api/internal/models"
)

// ForeignApprox is a display-only conversion of the payable amount into the
// billing country's currency. Never authoritative for billing.
type ForeignApprox struct {
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// PricingSummary assembles every derived amount the review views render.
// Amounts stay unrounded decimals; Formatted* strings round at 2dp.
type PricingSummary struct {
	PackageID            string              `json:"package_id"`
	PackageName          string              `json:"package_name"`
	Currency             string              `json:"currency"`
	BasePrice            decimal.Decimal     `json:"base_price"`
	PromoApplied         bool                `json:"promo_applied"`
	PromoDiscount        decimal.Decimal     `json:"promo_discount"`
	PromoLabel           string              `json:"promo_label,omitempty"`
	EffectivePrice       decimal.Decimal     `json:"effective_price"`
	PaymentType          *models.PaymentType `json:"payment_type"`
	DepositPercent       decimal.Decimal     `json:"deposit_percent"`
	DepositAmount        decimal.Decimal     `json:"deposit_amount"`
	FullPaymentPercent   decimal.Decimal     `json:"full_payment_percent"`
	FullPaymentPrice     decimal.Decimal     `json:"full_payment_price"`
	FormattedFullPayment string              `json:"formatted_full_payment"`
	PayableAmount        decimal.Decimal     `json:"payable_amount"`
	MonthlyAmount        *decimal.Decimal    `json:"monthly_amount,omitempty"`
	Months               *int                `json:"months,omitempty"`
	InstallmentAvailable bool                `json:"installment_available"`
	FormattedEffective   string              `json:"formatted_effective"`
	FormattedPayable     string              `json:"formatted_payable"`
	Foreign              *ForeignApprox      `json:"foreign,omitempty"`
}

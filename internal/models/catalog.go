package models

import "github.com/shopspring/decimal"

// PaymentCategory distinguishes card schemes from FPX online banking.
type PaymentCategory string

const (
	PaymentCategoryCard PaymentCategory = "card"
	PaymentCategoryFPX  PaymentCategory = "fpx"
)

// Package describes a purchasable course package. Eligibility flags are 0/1
// as sourced from the upstream catalog; percentages live in [0,100].
type Package struct {
	ID                         string          `db:"id" json:"id"`
	EncPackageID               string          `db:"enc_package_id" json:"enc_package_id"`
	Name                       string          `db:"name" json:"name"`
	CourseFee                  decimal.Decimal `db:"course_fee" json:"course_fee"`
	PromotionLabel             *string         `db:"promotion_label" json:"promotion_label,omitempty"`
	PromotionDiscount          decimal.Decimal `db:"promotion_discount" json:"promotion_discount"`
	PromotionPrice             decimal.Decimal `db:"promotion_price" json:"promotion_price"`
	PromotionPriceTaxed        decimal.Decimal `db:"promotion_price_taxed" json:"promotion_price_taxed"`
	IsIncludeTax               int             `db:"is_include_tax" json:"is_include_tax"`
	TaxRate                    decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Currency                   string          `db:"currency" json:"currency"`
	PaymentFull                int             `db:"payment_full" json:"payment_full"`
	PaymentInstallment         int             `db:"payment_installment" json:"payment_installment"`
	PaymentDeposit             int             `db:"payment_deposit" json:"payment_deposit"`
	DepositPercent             decimal.Decimal `db:"deposit_percent" json:"deposit_percent"`
	ForeignPaymentFull         int             `db:"foreign_payment_full" json:"foreign_payment_full"`
	ForeignPaymentInstallment  int             `db:"foreign_payment_installment" json:"foreign_payment_installment"`
	ForeignPaymentDeposit      int             `db:"foreign_payment_deposit" json:"foreign_payment_deposit"`
	InstallmentThreshold       decimal.Decimal `db:"installment_threshold" json:"installment_threshold"`
	FullPaymentDiscountPercent decimal.Decimal `db:"full_payment_discount_percent" json:"full_payment_discount_percent"`
}

// PhoneCode maps a country to its international dial prefix.
type PhoneCode struct {
	Code    string `db:"code" json:"code"`
	Country string `db:"country" json:"country"`
	Dial    string `db:"dial" json:"dial"`
}

// Country carries the billing currency used for display-only conversion.
type Country struct {
	Code     string `db:"code" json:"code"`
	Name     string `db:"name" json:"name"`
	Currency string `db:"currency" json:"currency"`
}

// InstallmentProvider is a bank offering a fixed menu of tenures in months.
type InstallmentProvider struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Plans []int  `json:"plans"`
}

// HasPlan reports whether the provider offers the given tenure.
func (p InstallmentProvider) HasPlan(months int) bool {
	for _, m := range p.Plans {
		if m == months {
			return true
		}
	}
	return false
}

// PaymentMethod is a selectable card scheme or FPX bank.
type PaymentMethod struct {
	ID       string          `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	Category PaymentCategory `db:"category" json:"category"`
}

// ExchangeRate is a static display-only rate from the package currency.
type ExchangeRate struct {
	Currency string          `db:"currency" json:"currency"`
	Rate     decimal.Decimal `db:"rate" json:"rate"`
}

// Catalog bundles all reference collections loaded once per process (or
// cached per TTL when database-backed).
type Catalog struct {
	Packages             []Package             `json:"packages"`
	PhoneCodes           []PhoneCode           `json:"phone_codes"`
	Countries            []Country             `json:"countries"`
	InstallmentProviders []InstallmentProvider `json:"installment_providers"`
	PaymentMethods       []PaymentMethod       `json:"payment_methods"`
	ExchangeRates        []ExchangeRate        `json:"exchange_rates"`
}

package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/enroll-flow-api/internal/models"
)

// StaticCatalog serves the built-in reference data set. It backs development
// and tests, and is the fallback when no database is configured.
type StaticCatalog struct {
	bundle models.Catalog
}

// NewStaticCatalog returns a catalog seeded with the default reference data.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{bundle: defaultCatalog()}
}

// Bundle returns the full reference data set.
func (c *StaticCatalog) Bundle(ctx context.Context) (*models.Catalog, error) {
	bundle := c.bundle
	return &bundle, nil
}

// PackageByID resolves a package or sql.ErrNoRows, mirroring the database
// repository contract.
func (c *StaticCatalog) PackageByID(ctx context.Context, id string) (*models.Package, error) {
	for _, pkg := range c.bundle.Packages {
		if pkg.ID == id {
			p := pkg
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

// Countries lists supported billing countries.
func (c *StaticCatalog) Countries(ctx context.Context) ([]models.Country, error) {
	return append([]models.Country(nil), c.bundle.Countries...), nil
}

// PhoneCodes lists supported dial prefixes.
func (c *StaticCatalog) PhoneCodes(ctx context.Context) ([]models.PhoneCode, error) {
	return append([]models.PhoneCode(nil), c.bundle.PhoneCodes...), nil
}

// PaymentMethods lists methods, optionally filtered by category.
func (c *StaticCatalog) PaymentMethods(ctx context.Context, category models.PaymentCategory) ([]models.PaymentMethod, error) {
	if category == "" {
		return append([]models.PaymentMethod(nil), c.bundle.PaymentMethods...), nil
	}
	var filtered []models.PaymentMethod
	for _, m := range c.bundle.PaymentMethods {
		if m.Category == category {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// InstallmentProviders lists providers with their tenure menus.
func (c *StaticCatalog) InstallmentProviders(ctx context.Context) ([]models.InstallmentProvider, error) {
	return append([]models.InstallmentProvider(nil), c.bundle.InstallmentProviders...), nil
}

// CountryByCode resolves a country or sql.ErrNoRows.
func (c *StaticCatalog) CountryByCode(ctx context.Context, code string) (*models.Country, error) {
	for _, country := range c.bundle.Countries {
		if country.Code == code {
			cc := country
			return &cc, nil
		}
	}
	return nil, sql.ErrNoRows
}

// ExchangeRate resolves the display-only rate for a currency or sql.ErrNoRows.
func (c *StaticCatalog) ExchangeRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	for _, rate := range c.bundle.ExchangeRates {
		if rate.Currency == currency {
			return rate.Rate, nil
		}
	}
	return decimal.Zero, sql.ErrNoRows
}

func defaultCatalog() models.Catalog {
	promoLabel := "Early Bird Discount"
	return models.Catalog{
		Packages: []models.Package{
			{
				ID:                         "pkg-001",
				EncPackageID:               "enc_abc123xyz",
				Name:                       "Professional Data Analytics Certification",
				CourseFee:                  decimal.NewFromInt(3500),
				PromotionLabel:             &promoLabel,
				PromotionDiscount:          decimal.NewFromInt(500),
				PromotionPrice:             decimal.NewFromInt(3000),
				PromotionPriceTaxed:        decimal.NewFromInt(3180),
				IsIncludeTax:               1,
				TaxRate:                    decimal.NewFromInt(8),
				Currency:                   "MYR",
				PaymentFull:                1,
				PaymentInstallment:         1,
				PaymentDeposit:             1,
				DepositPercent:             decimal.NewFromInt(10),
				ForeignPaymentFull:         1,
				ForeignPaymentInstallment:  1,
				ForeignPaymentDeposit:      1,
				InstallmentThreshold:       decimal.NewFromInt(600),
				FullPaymentDiscountPercent: decimal.NewFromInt(3),
			},
		},
		PhoneCodes: []models.PhoneCode{
			{Code: "MY", Country: "Malaysia", Dial: "+60"},
			{Code: "SG", Country: "Singapore", Dial: "+65"},
			{Code: "ID", Country: "Indonesia", Dial: "+62"},
			{Code: "TH", Country: "Thailand", Dial: "+66"},
			{Code: "PH", Country: "Philippines", Dial: "+63"},
			{Code: "US", Country: "United States", Dial: "+1"},
			{Code: "GB", Country: "United Kingdom", Dial: "+44"},
			{Code: "AU", Country: "Australia", Dial: "+61"},
			{Code: "IN", Country: "India", Dial: "+91"},
			{Code: "CN", Country: "China", Dial: "+86"},
		},
		Countries: []models.Country{
			{Code: "MY", Name: "Malaysia", Currency: "MYR"},
			{Code: "SG", Name: "Singapore", Currency: "SGD"},
			{Code: "ID", Name: "Indonesia", Currency: "IDR"},
			{Code: "TH", Name: "Thailand", Currency: "THB"},
			{Code: "PH", Name: "Philippines", Currency: "PHP"},
			{Code: "US", Name: "United States", Currency: "USD"},
			{Code: "GB", Name: "United Kingdom", Currency: "GBP"},
			{Code: "AU", Name: "Australia", Currency: "AUD"},
			{Code: "IN", Name: "India", Currency: "INR"},
			{Code: "CN", Name: "China", Currency: "CNY"},
		},
		InstallmentProviders: []models.InstallmentProvider{
			{ID: "maybank", Name: "Maybank", Plans: []int{6, 12, 24}},
			{ID: "cimb", Name: "CIMB Bank", Plans: []int{6, 12}},
			{ID: "publicbank", Name: "Public Bank", Plans: []int{6, 12, 24}},
		},
		PaymentMethods: []models.PaymentMethod{
			{ID: "visa", Name: "Visa", Category: models.PaymentCategoryCard},
			{ID: "mastercard", Name: "Mastercard", Category: models.PaymentCategoryCard},
			{ID: "amex", Name: "Amex", Category: models.PaymentCategoryCard},
			{ID: "maybank2u", Name: "Maybank2u", Category: models.PaymentCategoryFPX},
			{ID: "cimb-clicks", Name: "CIMB Clicks", Category: models.PaymentCategoryFPX},
			{ID: "public-bank", Name: "Public Bank", Category: models.PaymentCategoryFPX},
			{ID: "rhb", Name: "RHB Now", Category: models.PaymentCategoryFPX},
			{ID: "hong-leong", Name: "Hong Leong Connect", Category: models.PaymentCategoryFPX},
		},
		ExchangeRates: []models.ExchangeRate{
			{Currency: "MYR", Rate: decimal.NewFromInt(1)},
			{Currency: "SGD", Rate: decimal.RequireFromString("0.29")},
			{Currency: "USD", Rate: decimal.RequireFromString("0.21")},
			{Currency: "GBP", Rate: decimal.RequireFromString("0.17")},
			{Currency: "AUD", Rate: decimal.RequireFromString("0.33")},
			{Currency: "IDR", Rate: decimal.NewFromInt(3300)},
			{Currency: "THB", Rate: decimal.RequireFromString("7.5")},
			{Currency: "PHP", Rate: decimal.NewFromInt(12)},
			{Currency: "INR", Rate: decimal.RequireFromString("17.5")},
			{Currency: "CNY", Rate: decimal.RequireFromString("1.53")},
		},
	}
}

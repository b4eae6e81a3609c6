package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/enroll-flow-api/internal/models"
)

// CatalogRepository serves reference data from PostgreSQL. The schema mirrors
// the static bundle: packages, countries, phone_codes, payment_methods,
// installment_providers plus installment_provider_plans for the tenure menus.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository instantiates a catalog repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// PackageByID loads a single package.
func (r *CatalogRepository) PackageByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	query := `SELECT id, enc_package_id, name, course_fee, promotion_label, promotion_discount,
		promotion_price, promotion_price_taxed, is_include_tax, tax_rate, currency,
		payment_full, payment_installment, payment_deposit, deposit_percent,
		foreign_payment_full, foreign_payment_installment, foreign_payment_deposit,
		installment_threshold, full_payment_discount_percent
		FROM packages WHERE id = $1`
	if err := r.db.GetContext(ctx, &pkg, query, id); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Countries lists billing countries ordered by name.
func (r *CatalogRepository) Countries(ctx context.Context) ([]models.Country, error) {
	countries := []models.Country{}
	query := `SELECT code, name, currency FROM countries ORDER BY name`
	if err := r.db.SelectContext(ctx, &countries, query); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

// CountryByCode loads one country.
func (r *CatalogRepository) CountryByCode(ctx context.Context, code string) (*models.Country, error) {
	var country models.Country
	query := `SELECT code, name, currency FROM countries WHERE code = $1`
	if err := r.db.GetContext(ctx, &country, query, code); err != nil {
		return nil, err
	}
	return &country, nil
}

// PhoneCodes lists dial prefixes ordered by country name.
func (r *CatalogRepository) PhoneCodes(ctx context.Context) ([]models.PhoneCode, error) {
	codes := []models.PhoneCode{}
	query := `SELECT code, country, dial FROM phone_codes ORDER BY country`
	if err := r.db.SelectContext(ctx, &codes, query); err != nil {
		return nil, fmt.Errorf("list phone codes: %w", err)
	}
	return codes, nil
}

// PaymentMethods lists methods, optionally filtered by category.
func (r *CatalogRepository) PaymentMethods(ctx context.Context, category models.PaymentCategory) ([]models.PaymentMethod, error) {
	methods := []models.PaymentMethod{}
	query := `SELECT id, name, category FROM payment_methods`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY sort_order`
	if err := r.db.SelectContext(ctx, &methods, query, args...); err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

// InstallmentProviders lists providers with their plan menus. Plans are read
// in a second query keyed by provider to keep months ordered.
func (r *CatalogRepository) InstallmentProviders(ctx context.Context) ([]models.InstallmentProvider, error) {
	providers := []models.InstallmentProvider{}
	query := `SELECT id, name FROM installment_providers ORDER BY sort_order`
	if err := r.db.SelectContext(ctx, &providers, query); err != nil {
		return nil, fmt.Errorf("list installment providers: %w", err)
	}

	type planRow struct {
		ProviderID string `db:"provider_id"`
		Months     int    `db:"months"`
	}
	rows := []planRow{}
	planQuery := `SELECT provider_id, months FROM installment_provider_plans ORDER BY provider_id, months`
	if err := r.db.SelectContext(ctx, &rows, planQuery); err != nil {
		return nil, fmt.Errorf("list installment plans: %w", err)
	}

	byProvider := make(map[string][]int, len(providers))
	for _, row := range rows {
		byProvider[row.ProviderID] = append(byProvider[row.ProviderID], row.Months)
	}
	for i := range providers {
		providers[i].Plans = byProvider[providers[i].ID]
	}
	return providers, nil
}

// ExchangeRate loads the display-only conversion rate for a currency.
func (r *CatalogRepository) ExchangeRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	var rate decimal.Decimal
	query := `SELECT rate FROM exchange_rates WHERE currency = $1`
	if err := r.db.GetContext(ctx, &rate, query, currency); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

// Bundle assembles the full reference data set in one call.
func (r *CatalogRepository) Bundle(ctx context.Context) (*models.Catalog, error) {
	packages := []models.Package{}
	query := `SELECT id, enc_package_id, name, course_fee, promotion_label, promotion_discount,
		promotion_price, promotion_price_taxed, is_include_tax, tax_rate, currency,
		payment_full, payment_installment, payment_deposit, deposit_percent,
		foreign_payment_full, foreign_payment_installment, foreign_payment_deposit,
		installment_threshold, full_payment_discount_percent
		FROM packages ORDER BY id`
	if err := r.db.SelectContext(ctx, &packages, query); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	countries, err := r.Countries(ctx)
	if err != nil {
		return nil, err
	}
	phoneCodes, err := r.PhoneCodes(ctx)
	if err != nil {
		return nil, err
	}
	methods, err := r.PaymentMethods(ctx, "")
	if err != nil {
		return nil, err
	}
	providers, err := r.InstallmentProviders(ctx)
	if err != nil {
		return nil, err
	}

	rates := []models.ExchangeRate{}
	if err := r.db.SelectContext(ctx, &rates, `SELECT currency, rate FROM exchange_rates ORDER BY currency`); err != nil {
		return nil, fmt.Errorf("list exchange rates: %w", err)
	}

	return &models.Catalog{
		Packages:             packages,
		Countries:            countries,
		PhoneCodes:           phoneCodes,
		PaymentMethods:       methods,
		InstallmentProviders: providers,
		ExchangeRates:        rates,
	}, nil
}

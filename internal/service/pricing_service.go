package service

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
	"github.com/noah-isme/enroll-flow-api/pkg/money"
)

// PricingService derives every amount the enrollment views display. All
// arithmetic runs on decimals; rounding happens only when formatting.
type PricingService struct {
	floor decimal.Decimal
}

// NewPricingService constructs a pricing engine clamping effective prices at
// zero. An over-discounting promo can therefore never produce a negative
// payable amount.
func NewPricingService() *PricingService {
	return &PricingService{floor: decimal.Zero}
}

// EffectivePrice is the taxed promotion price minus an applied promo
// discount, clamped at the floor.
func (s *PricingService) EffectivePrice(pkg *models.Package, promoApplied bool, promoDiscount decimal.Decimal) decimal.Decimal {
	price := pkg.PromotionPriceTaxed
	if promoApplied {
		price = price.Sub(promoDiscount)
	}
	return money.ClampFloor(price, s.floor)
}

// DepositAmount is the upfront slice of the effective price for the deposit
// payment type.
func (s *PricingService) DepositAmount(effective, depositPercent decimal.Decimal) decimal.Decimal {
	return effective.Mul(money.Percent(depositPercent))
}

// FullPaymentDiscountedPrice applies the one-time full-payment incentive.
func (s *PricingService) FullPaymentDiscountedPrice(effective, discountPercent decimal.Decimal) decimal.Decimal {
	return effective.Mul(decimal.NewFromInt(1).Sub(money.Percent(discountPercent)))
}

// InstallmentMonthly splits the effective price across the tenure.
func (s *PricingService) InstallmentMonthly(effective decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, appErrors.Clone(appErrors.ErrValidation, "installment months must be positive")
	}
	return effective.Div(decimal.NewFromInt(int64(months))), nil
}

// ForeignApprox converts for display into the billing currency. Never
// authoritative for the charged amount.
func (s *PricingService) ForeignApprox(effective, rate decimal.Decimal) decimal.Decimal {
	return effective.Mul(rate)
}

// InstallmentAvailable reports whether installment may be offered: the
// locale-correct eligibility flag must be set and the effective price must
// strictly exceed the package threshold.
func (s *PricingService) InstallmentAvailable(pkg *models.Package, malaysian bool, effective decimal.Decimal) bool {
	flag := pkg.PaymentInstallment
	if !malaysian {
		flag = pkg.ForeignPaymentInstallment
	}
	return flag == 1 && effective.GreaterThan(pkg.InstallmentThreshold)
}

// Quote assembles the complete pricing summary for a session snapshot.
// foreign may be nil when the billing country uses the package currency or
// is not yet chosen.
func (s *PricingService) Quote(pkg *models.Package, st models.EnrollmentState, foreign *models.Country, rate decimal.Decimal) (*dto.PricingSummary, error) {
	effective := s.EffectivePrice(pkg, st.PromocodeApplied, st.PromocodeDiscount)
	deposit := s.DepositAmount(effective, pkg.DepositPercent)
	fullPrice := s.FullPaymentDiscountedPrice(effective, pkg.FullPaymentDiscountPercent)

	payable := effective
	if st.PaymentType != nil && *st.PaymentType == models.PaymentTypeDeposit {
		payable = deposit
	}

	summary := &dto.PricingSummary{
		PackageID:            pkg.ID,
		PackageName:          pkg.Name,
		Currency:             pkg.Currency,
		BasePrice:            pkg.PromotionPriceTaxed,
		PromoApplied:         st.PromocodeApplied,
		PromoDiscount:        st.PromocodeDiscount,
		PromoLabel:           st.PromocodeLabel,
		EffectivePrice:       effective,
		PaymentType:          st.PaymentType,
		DepositPercent:       pkg.DepositPercent,
		DepositAmount:        deposit,
		FullPaymentPercent:   pkg.FullPaymentDiscountPercent,
		FullPaymentPrice:     fullPrice,
		FormattedFullPayment: money.Format(pkg.Currency, fullPrice),
		PayableAmount:        payable,
		InstallmentAvailable: s.InstallmentAvailable(pkg, st.IsMalaysian(), effective),
		FormattedEffective:   money.Format(pkg.Currency, effective),
		FormattedPayable:     money.Format(pkg.Currency, payable),
	}

	if st.PaymentType != nil && *st.PaymentType == models.PaymentTypeInstallment && st.InstallmentPlan != nil {
		monthly, err := s.InstallmentMonthly(effective, *st.InstallmentPlan)
		if err != nil {
			return nil, err
		}
		months := *st.InstallmentPlan
		summary.MonthlyAmount = &monthly
		summary.Months = &months
	}

	if foreign != nil && foreign.Currency != pkg.Currency && !rate.IsZero() {
		approx := s.ForeignApprox(payable, rate)
		summary.Foreign = &dto.ForeignApprox{
			Currency:  foreign.Currency,
			Amount:    approx,
			Formatted: money.Format(foreign.Currency, approx),
		}
	}

	return summary, nil
}

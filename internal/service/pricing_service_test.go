package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enroll-flow-api/internal/models"
)

func testPackage() *models.Package {
	return &models.Package{
		ID:                         "pkg-001",
		Name:                       "Professional Certificate Programme",
		CourseFee:                  decimal.NewFromInt(3500),
		PromotionPriceTaxed:        decimal.NewFromInt(3180),
		TaxRate:                    decimal.NewFromInt(8),
		Currency:                   "MYR",
		PaymentFull:                1,
		PaymentInstallment:         1,
		PaymentDeposit:             1,
		DepositPercent:             decimal.NewFromInt(10),
		ForeignPaymentFull:         1,
		ForeignPaymentInstallment:  0,
		ForeignPaymentDeposit:      1,
		InstallmentThreshold:       decimal.NewFromInt(600),
		FullPaymentDiscountPercent: decimal.NewFromInt(3),
	}
}

func TestEffectivePriceWithoutPromo(t *testing.T) {
	p := NewPricingService()
	got := p.EffectivePrice(testPackage(), false, decimal.Zero)
	assert.True(t, got.Equal(decimal.NewFromInt(3180)), "got %s", got)
}

func TestEffectivePriceSubtractsAppliedDiscount(t *testing.T) {
	p := NewPricingService()
	got := p.EffectivePrice(testPackage(), true, decimal.NewFromInt(636))
	assert.True(t, got.Equal(decimal.NewFromInt(2544)), "got %s", got)
}

func TestEffectivePriceClampedAtZero(t *testing.T) {
	p := NewPricingService()
	got := p.EffectivePrice(testPackage(), true, decimal.NewFromInt(5000))
	assert.True(t, got.Equal(decimal.Zero), "got %s", got)
}

func TestEffectivePriceIgnoresUnappliedDiscount(t *testing.T) {
	p := NewPricingService()
	got := p.EffectivePrice(testPackage(), false, decimal.NewFromInt(636))
	assert.True(t, got.Equal(decimal.NewFromInt(3180)), "got %s", got)
}

func TestDepositAmount(t *testing.T) {
	p := NewPricingService()
	got := p.DepositAmount(decimal.NewFromInt(3180), decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(318)), "got %s", got)
}

func TestFullPaymentDiscountedPrice(t *testing.T) {
	p := NewPricingService()
	got := p.FullPaymentDiscountedPrice(decimal.NewFromInt(3180), decimal.NewFromInt(3))
	assert.True(t, got.Equal(decimal.NewFromFloat(3084.6)), "got %s", got)
}

func TestInstallmentMonthlyRoundTrips(t *testing.T) {
	p := NewPricingService()
	effective := decimal.NewFromInt(3180)
	monthly, err := p.InstallmentMonthly(effective, 12)
	require.NoError(t, err)

	total := monthly.Mul(decimal.NewFromInt(12))
	diff := total.Sub(effective).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)), "diff %s", diff)
}

func TestInstallmentMonthlyRejectsNonPositiveMonths(t *testing.T) {
	p := NewPricingService()
	_, err := p.InstallmentMonthly(decimal.NewFromInt(3180), 0)
	assert.Error(t, err)
}

func TestInstallmentAvailability(t *testing.T) {
	p := NewPricingService()
	pkg := testPackage()

	assert.True(t, p.InstallmentAvailable(pkg, true, decimal.NewFromInt(3180)))
	// foreign flag disables installment for non-Malaysian billing
	assert.False(t, p.InstallmentAvailable(pkg, false, decimal.NewFromInt(3180)))
	// threshold is strict: exactly at it does not qualify
	assert.False(t, p.InstallmentAvailable(pkg, true, decimal.NewFromInt(600)))
	assert.True(t, p.InstallmentAvailable(pkg, true, decimal.NewFromFloat(600.01)))
}

func TestQuoteDepositPayable(t *testing.T) {
	p := NewPricingService()
	st := models.DefaultEnrollmentState()
	deposit := models.PaymentTypeDeposit
	st.PaymentType = &deposit

	summary, err := p.Quote(testPackage(), st, nil, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, summary.PayableAmount.Equal(decimal.NewFromInt(318)), "got %s", summary.PayableAmount)
	assert.Equal(t, "RM 318.00", summary.FormattedPayable)
	assert.Nil(t, summary.MonthlyAmount)
}

func TestQuoteInstallmentMonthly(t *testing.T) {
	p := NewPricingService()
	st := models.DefaultEnrollmentState()
	installment := models.PaymentTypeInstallment
	provider := "maybank"
	months := 12
	st.PaymentType = &installment
	st.InstallmentProviderID = &provider
	st.InstallmentPlan = &months
	st.Contact.BillingCountry = "MY"

	summary, err := p.Quote(testPackage(), st, nil, decimal.Zero)
	require.NoError(t, err)

	require.NotNil(t, summary.MonthlyAmount)
	require.NotNil(t, summary.Months)
	assert.Equal(t, 12, *summary.Months)
	assert.True(t, summary.MonthlyAmount.Equal(decimal.NewFromInt(265)), "got %s", summary.MonthlyAmount)
	assert.True(t, summary.InstallmentAvailable)
}

func TestQuoteExposesFullPaymentIncentive(t *testing.T) {
	p := NewPricingService()
	st := models.DefaultEnrollmentState()

	summary, err := p.Quote(testPackage(), st, nil, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, summary.FullPaymentPercent.Equal(decimal.NewFromInt(3)), "got %s", summary.FullPaymentPercent)
	assert.True(t, summary.FullPaymentPrice.Equal(decimal.NewFromFloat(3084.6)), "got %s", summary.FullPaymentPrice)
	assert.Equal(t, "RM 3,084.60", summary.FormattedFullPayment)
}

func TestQuoteForeignApprox(t *testing.T) {
	p := NewPricingService()
	st := models.DefaultEnrollmentState()
	st.Contact.BillingCountry = "SG"

	foreign := &models.Country{Code: "SG", Name: "Singapore", Currency: "SGD"}
	summary, err := p.Quote(testPackage(), st, foreign, decimal.NewFromFloat(0.29))
	require.NoError(t, err)

	require.NotNil(t, summary.Foreign)
	assert.Equal(t, "SGD", summary.Foreign.Currency)
	assert.Equal(t, "SGD 922.20", summary.Foreign.Formatted)
}

func TestQuoteOmitsForeignForSameCurrency(t *testing.T) {
	p := NewPricingService()
	st := models.DefaultEnrollmentState()
	st.Contact.BillingCountry = "MY"

	foreign := &models.Country{Code: "MY", Name: "Malaysia", Currency: "MYR"}
	summary, err := p.Quote(testPackage(), st, foreign, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Nil(t, summary.Foreign)
}

func TestQuotePromoDiscountReducesPayable(t *testing.T) {
	p := NewPricingService()
	st := models.DefaultEnrollmentState()
	applyPromo(&st, "SAVE20", decimal.NewFromInt(636), "20% Off Promocode Applied")

	summary, err := p.Quote(testPackage(), st, nil, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, summary.EffectivePrice.Equal(decimal.NewFromInt(2544)), "got %s", summary.EffectivePrice)
	assert.True(t, summary.PayableAmount.Equal(decimal.NewFromInt(2544)), "got %s", summary.PayableAmount)
	assert.True(t, summary.PromoApplied)
}

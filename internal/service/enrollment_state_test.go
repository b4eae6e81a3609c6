package service

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
)

func testProviders() []models.InstallmentProvider {
	return []models.InstallmentProvider{
		{ID: "maybank", Name: "Maybank", Plans: []int{6, 12, 24}},
		{ID: "cimb", Name: "CIMB", Plans: []int{6, 12}},
		{ID: "publicbank", Name: "Public Bank", Plans: []int{6, 12, 24}},
	}
}

func testMethods() []models.PaymentMethod {
	return []models.PaymentMethod{
		{ID: "visa", Name: "Visa", Category: models.PaymentCategoryCard},
		{ID: "mastercard", Name: "Mastercard", Category: models.PaymentCategoryCard},
		{ID: "maybank2u", Name: "Maybank2u", Category: models.PaymentCategoryFPX},
	}
}

func TestDefaultStateSatisfiesInvariants(t *testing.T) {
	st := models.DefaultEnrollmentState()
	assert.NoError(t, checkStateInvariants(st, testProviders()))
	require.NotNil(t, st.PaymentType)
	assert.Equal(t, models.PaymentTypeFull, *st.PaymentType)
}

func TestApplyPaymentTypeClearsOppositeBranch(t *testing.T) {
	st := models.DefaultEnrollmentState()
	applyPaymentType(&st, models.PaymentTypeInstallment)
	applyInstallmentPlan(&st, "maybank", 12)

	applyPaymentType(&st, models.PaymentTypeFull)
	assert.Nil(t, st.InstallmentProviderID)
	assert.Nil(t, st.InstallmentPlan)

	card := models.PaymentCategoryCard
	st.PaymentOption = &card
	applyPaymentMethod(&st, "visa")

	applyPaymentType(&st, models.PaymentTypeInstallment)
	assert.Nil(t, st.PaymentOption)
	assert.Nil(t, st.PaymentMethodID)
}

func TestApplyInstallmentTypeAllowedForcesInstallment(t *testing.T) {
	st := models.DefaultEnrollmentState()
	card := models.PaymentCategoryCard
	st.PaymentOption = &card
	applyPaymentMethod(&st, "visa")

	applyInstallmentType(&st, models.InstallmentAllowed)

	require.NotNil(t, st.PaymentType)
	assert.Equal(t, models.PaymentTypeInstallment, *st.PaymentType)
	assert.Nil(t, st.PaymentOption)
	assert.Nil(t, st.PaymentMethodID)
}

func TestApplyInstallmentTypeNotAllowedDemotesOnlyInstallment(t *testing.T) {
	st := models.DefaultEnrollmentState()
	applyInstallmentType(&st, models.InstallmentAllowed)
	applyInstallmentPlan(&st, "cimb", 6)

	applyInstallmentType(&st, models.InstallmentNotAllowed)
	require.NotNil(t, st.PaymentType)
	assert.Equal(t, models.PaymentTypeDeposit, *st.PaymentType)
	assert.Nil(t, st.InstallmentProviderID)
	assert.Nil(t, st.InstallmentPlan)

	// a non-installment choice is left alone
	applyPaymentType(&st, models.PaymentTypeFull)
	applyInstallmentType(&st, models.InstallmentNotAllowed)
	assert.Equal(t, models.PaymentTypeFull, *st.PaymentType)
}

func TestApplyPaymentOptionClearsMethod(t *testing.T) {
	st := models.DefaultEnrollmentState()
	card := models.PaymentCategoryCard
	st.PaymentOption = &card
	applyPaymentMethod(&st, "visa")

	applyPaymentOption(&st, models.PaymentCategoryFPX)
	assert.Nil(t, st.PaymentMethodID)
	require.NotNil(t, st.PaymentOption)
	assert.Equal(t, models.PaymentCategoryFPX, *st.PaymentOption)
}

func TestApplyInstallmentProviderClearsPlan(t *testing.T) {
	st := models.DefaultEnrollmentState()
	applyPaymentType(&st, models.PaymentTypeInstallment)
	applyInstallmentPlan(&st, "maybank", 24)

	applyInstallmentProvider(&st, "cimb")
	require.NotNil(t, st.InstallmentProviderID)
	assert.Equal(t, "cimb", *st.InstallmentProviderID)
	assert.Nil(t, st.InstallmentPlan)
}

func TestAutoRepairSelectsFirstMethodOfBranch(t *testing.T) {
	st := models.DefaultEnrollmentState()
	applyPaymentOption(&st, models.PaymentCategoryCard)

	cards := []models.PaymentMethod{
		{ID: "visa", Category: models.PaymentCategoryCard},
		{ID: "mastercard", Category: models.PaymentCategoryCard},
	}
	autoRepairPaymentMethod(&st, cards)
	require.NotNil(t, st.PaymentMethodID)
	assert.Equal(t, "visa", *st.PaymentMethodID)

	// a valid selection is not overwritten
	applyPaymentMethod(&st, "mastercard")
	autoRepairPaymentMethod(&st, cards)
	assert.Equal(t, "mastercard", *st.PaymentMethodID)
}

func TestClearPromoZeroesDiscount(t *testing.T) {
	st := models.DefaultEnrollmentState()
	applyPromo(&st, "SAVE20", decimal.NewFromInt(636), "20% Off Promocode Applied")
	require.True(t, st.PromocodeApplied)

	clearPromo(&st)
	assert.False(t, st.PromocodeApplied)
	assert.True(t, st.PromocodeDiscount.IsZero())
	assert.Empty(t, st.PromocodeLabel)
}

// TestRandomApplierSequencesKeepInvariants runs random mutation sequences
// and asserts the state stays well formed after every step.
func TestRandomApplierSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	providers := testProviders()
	methods := testMethods()
	types := []models.PaymentType{models.PaymentTypeFull, models.PaymentTypeInstallment, models.PaymentTypeDeposit}
	options := []models.PaymentCategory{models.PaymentCategoryCard, models.PaymentCategoryFPX}

	for run := 0; run < 200; run++ {
		st := models.DefaultEnrollmentState()
		for step := 0; step < 30; step++ {
			switch rng.Intn(8) {
			case 0:
				applyPaymentType(&st, types[rng.Intn(len(types))])
			case 1:
				kinds := []models.InstallmentType{models.InstallmentAllowed, models.InstallmentNotAllowed}
				applyInstallmentType(&st, kinds[rng.Intn(2)])
			case 2:
				if st.PaymentType != nil && *st.PaymentType != models.PaymentTypeInstallment {
					applyPaymentOption(&st, options[rng.Intn(2)])
				}
			case 3:
				if st.PaymentType != nil && *st.PaymentType != models.PaymentTypeInstallment && st.PaymentOption != nil {
					applyPaymentMethod(&st, methods[rng.Intn(len(methods))].ID)
				}
			case 4:
				if st.PaymentType != nil && *st.PaymentType == models.PaymentTypeInstallment {
					applyInstallmentProvider(&st, providers[rng.Intn(len(providers))].ID)
				}
			case 5:
				if st.PaymentType != nil && *st.PaymentType == models.PaymentTypeInstallment {
					p := providers[rng.Intn(len(providers))]
					applyInstallmentPlan(&st, p.ID, p.Plans[rng.Intn(len(p.Plans))])
				}
			case 6:
				applyPromo(&st, "SAVE20", decimal.NewFromInt(636), "20% Off Promocode Applied")
			case 7:
				clearPromo(&st)
			}
			require.NoError(t, checkStateInvariants(st, providers), "run %d step %d", run, step)
		}
	}
}

func TestApplyContactUpdatePatchesOnlyProvidedFields(t *testing.T) {
	st := models.DefaultEnrollmentState()
	st.Contact.FamilyName = "Tan"
	st.Contact.Email = "tan@example.com"

	given := "Mei"
	applyContactUpdate(&st, dto.UpdateContactRequest{GivenName: &given})

	assert.Equal(t, "Tan", st.Contact.FamilyName)
	assert.Equal(t, "Mei", st.Contact.GivenName)
	assert.Equal(t, "tan@example.com", st.Contact.Email)
}

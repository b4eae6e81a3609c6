package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enroll-flow-api/internal/models"
)

type stubPaymentCatalog struct{}

func (s *stubPaymentCatalog) PaymentMethods(ctx context.Context, category models.PaymentCategory) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	for _, m := range testMethods() {
		if category == "" || m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubPaymentCatalog) InstallmentProviders(ctx context.Context) ([]models.InstallmentProvider, error) {
	return testProviders(), nil
}

func TestPaymentValidatorAcceptsCardSelection(t *testing.T) {
	v := NewPaymentSelectionValidator(&stubPaymentCatalog{})
	st := models.DefaultEnrollmentState()
	applyPaymentOption(&st, models.PaymentCategoryCard)
	applyPaymentMethod(&st, "visa")

	res, err := v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestPaymentValidatorMissingOption(t *testing.T) {
	v := NewPaymentSelectionValidator(&stubPaymentCatalog{})
	st := models.DefaultEnrollmentState()

	res, err := v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Please select a payment method", res.Message)
}

func TestPaymentValidatorMissingMethodMessagePerBranch(t *testing.T) {
	v := NewPaymentSelectionValidator(&stubPaymentCatalog{})

	st := models.DefaultEnrollmentState()
	applyPaymentOption(&st, models.PaymentCategoryCard)
	res, err := v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, "Please choose a card type before proceeding", res.Message)

	applyPaymentOption(&st, models.PaymentCategoryFPX)
	res, err = v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, "Please choose a bank before proceeding", res.Message)
}

func TestPaymentValidatorMethodFromWrongBranch(t *testing.T) {
	v := NewPaymentSelectionValidator(&stubPaymentCatalog{})
	st := models.DefaultEnrollmentState()
	applyPaymentOption(&st, models.PaymentCategoryFPX)
	applyPaymentMethod(&st, "visa")

	res, err := v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Please choose a bank before proceeding", res.Message)
}

func TestPaymentValidatorInstallmentRequiresPlan(t *testing.T) {
	v := NewPaymentSelectionValidator(&stubPaymentCatalog{})
	st := models.DefaultEnrollmentState()
	applyPaymentType(&st, models.PaymentTypeInstallment)

	res, err := v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Please select an installment plan before proceeding", res.Message)

	applyInstallmentProvider(&st, "maybank")
	res, err = v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	applyInstallmentPlan(&st, "maybank", 12)
	res, err = v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestPaymentValidatorInstallmentPlanMustBelongToProvider(t *testing.T) {
	v := NewPaymentSelectionValidator(&stubPaymentCatalog{})
	st := models.DefaultEnrollmentState()
	applyPaymentType(&st, models.PaymentTypeInstallment)
	// cimb offers 6 and 12 only
	applyInstallmentPlan(&st, "cimb", 24)

	res, err := v.Validate(context.Background(), st)
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

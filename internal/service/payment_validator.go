package service

import (
	"context"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
)

type paymentCatalogReader interface {
	PaymentMethods(ctx context.Context, category models.PaymentCategory) ([]models.PaymentMethod, error)
	InstallmentProviders(ctx context.Context) ([]models.InstallmentProvider, error)
}

// PaymentSelectionValidator gates submission: it answers whether the current
// selection forms a legal payment combination and, when it does not, which
// section-level message to show.
type PaymentSelectionValidator struct {
	catalog paymentCatalogReader
}

func NewPaymentSelectionValidator(catalog paymentCatalogReader) *PaymentSelectionValidator {
	return &PaymentSelectionValidator{catalog: catalog}
}

// Validate checks the payment selection of the given state. Catalog lookups
// can fail; that error is returned separately from the validation verdict.
func (v *PaymentSelectionValidator) Validate(ctx context.Context, st models.EnrollmentState) (dto.PaymentValidationResult, error) {
	if st.PaymentType != nil && *st.PaymentType == models.PaymentTypeInstallment {
		return v.validateInstallment(ctx, st)
	}
	return v.validateDirect(ctx, st)
}

func (v *PaymentSelectionValidator) validateInstallment(ctx context.Context, st models.EnrollmentState) (dto.PaymentValidationResult, error) {
	invalid := dto.PaymentValidationResult{
		Message: "Please select an installment plan before proceeding",
	}
	if st.InstallmentProviderID == nil || st.InstallmentPlan == nil {
		return invalid, nil
	}
	providers, err := v.catalog.InstallmentProviders(ctx)
	if err != nil {
		return dto.PaymentValidationResult{}, err
	}
	for _, p := range providers {
		if p.ID == *st.InstallmentProviderID {
			if p.HasPlan(*st.InstallmentPlan) {
				return dto.PaymentValidationResult{Valid: true}, nil
			}
			return invalid, nil
		}
	}
	return invalid, nil
}

func (v *PaymentSelectionValidator) validateDirect(ctx context.Context, st models.EnrollmentState) (dto.PaymentValidationResult, error) {
	if st.PaymentOption == nil {
		return dto.PaymentValidationResult{Message: "Please select a payment method"}, nil
	}

	message := "Please choose a bank before proceeding"
	if *st.PaymentOption == models.PaymentCategoryCard {
		message = "Please choose a card type before proceeding"
	}
	if st.PaymentMethodID == nil {
		return dto.PaymentValidationResult{Message: message}, nil
	}

	methods, err := v.catalog.PaymentMethods(ctx, *st.PaymentOption)
	if err != nil {
		return dto.PaymentValidationResult{}, err
	}
	for _, m := range methods {
		if m.ID == *st.PaymentMethodID {
			return dto.PaymentValidationResult{Valid: true}, nil
		}
	}
	return dto.PaymentValidationResult{Message: message}, nil
}

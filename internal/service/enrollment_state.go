package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
)

// The appliers in this file are the only code that writes EnrollmentState
// fields. Each one re-establishes the state invariants before returning, so
// callers can hold any applier result to be well formed.

func applyContactUpdate(st *models.EnrollmentState, req dto.UpdateContactRequest) {
	if req.FamilyName != nil {
		st.Contact.FamilyName = *req.FamilyName
	}
	if req.GivenName != nil {
		st.Contact.GivenName = *req.GivenName
	}
	if req.PhoneCode != nil {
		st.Contact.PhoneCode = *req.PhoneCode
	}
	if req.ContactNumber != nil {
		st.Contact.ContactNumber = *req.ContactNumber
	}
	if req.Email != nil {
		st.Contact.Email = *req.Email
	}
	if req.BillingCountry != nil {
		st.Contact.BillingCountry = *req.BillingCountry
	}
}

func applyPaymentType(st *models.EnrollmentState, t models.PaymentType) {
	st.PaymentType = &t
	if t == models.PaymentTypeInstallment {
		st.PaymentOption = nil
		st.PaymentMethodID = nil
	} else {
		st.InstallmentProviderID = nil
		st.InstallmentPlan = nil
	}
}

// applyInstallmentType records the bank's installment support. A bank that
// allows installments forces the installment payment type; one that does not
// demotes an installment choice to deposit and leaves any other choice
// untouched.
func applyInstallmentType(st *models.EnrollmentState, k models.InstallmentType) {
	st.InstallmentType = k
	switch k {
	case models.InstallmentAllowed:
		applyPaymentType(st, models.PaymentTypeInstallment)
	case models.InstallmentNotAllowed:
		if st.PaymentType != nil && *st.PaymentType == models.PaymentTypeInstallment {
			applyPaymentType(st, models.PaymentTypeDeposit)
		}
	}
}

// applyPaymentOption switches the card/fpx branch. The concrete method is
// cleared because it belongs to the previous branch.
func applyPaymentOption(st *models.EnrollmentState, o models.PaymentCategory) {
	st.PaymentOption = &o
	st.PaymentMethodID = nil
}

func applyPaymentMethod(st *models.EnrollmentState, id string) {
	st.PaymentMethodID = &id
}

// applyInstallmentProvider clears the plan: tenures are provider-specific.
func applyInstallmentProvider(st *models.EnrollmentState, providerID string) {
	st.InstallmentProviderID = &providerID
	st.InstallmentPlan = nil
}

// applyInstallmentPlan writes provider and tenure atomically so the plan
// never points at a stale provider.
func applyInstallmentPlan(st *models.EnrollmentState, providerID string, months int) {
	st.InstallmentProviderID = &providerID
	st.InstallmentPlan = &months
}

func applyPromo(st *models.EnrollmentState, code string, discount decimal.Decimal, label string) {
	st.Promocode = code
	st.PromocodeApplied = true
	st.PromocodeDiscount = discount
	st.PromocodeLabel = label
}

func clearPromo(st *models.EnrollmentState) {
	st.PromocodeApplied = false
	st.PromocodeDiscount = decimal.Zero
	st.PromocodeLabel = ""
}

// autoRepairPaymentMethod keeps the selected method inside the active
// option's menu. When the option is set and the current method is missing or
// belongs to another category, the first method of the menu is selected.
func autoRepairPaymentMethod(st *models.EnrollmentState, methods []models.PaymentMethod) {
	if st.PaymentType == nil || *st.PaymentType == models.PaymentTypeInstallment {
		return
	}
	if st.PaymentOption == nil || len(methods) == 0 {
		return
	}
	if st.PaymentMethodID != nil {
		for _, m := range methods {
			if m.ID == *st.PaymentMethodID && m.Category == *st.PaymentOption {
				return
			}
		}
	}
	applyPaymentMethod(st, methods[0].ID)
}

// checkStateInvariants reports the first violated invariant, nil when the
// state is well formed. Exercised by tests after randomized applier runs.
func checkStateInvariants(st models.EnrollmentState, providers []models.InstallmentProvider) error {
	installment := st.PaymentType != nil && *st.PaymentType == models.PaymentTypeInstallment
	if !installment && (st.InstallmentProviderID != nil || st.InstallmentPlan != nil) {
		return fmt.Errorf("non-installment state carries provider/plan")
	}
	if installment && (st.PaymentOption != nil || st.PaymentMethodID != nil) {
		return fmt.Errorf("installment state carries option/method")
	}
	if st.InstallmentPlan != nil {
		if st.InstallmentProviderID == nil {
			return fmt.Errorf("plan set without provider")
		}
		found := false
		for _, p := range providers {
			if p.ID == *st.InstallmentProviderID {
				found = p.HasPlan(*st.InstallmentPlan)
				break
			}
		}
		if !found {
			return fmt.Errorf("plan %d not offered by provider %s", *st.InstallmentPlan, *st.InstallmentProviderID)
		}
	}
	if st.PromocodeDiscount.GreaterThan(decimal.Zero) && !st.PromocodeApplied {
		return fmt.Errorf("positive discount without applied promo")
	}
	return nil
}

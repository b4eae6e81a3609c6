package models

import "github.com/shopspring/decimal"

// PaymentType selects how the effective price is settled.
type PaymentType string

// Possible payment types.
const (
	PaymentTypeFull        PaymentType = "full"
	PaymentTypeInstallment PaymentType = "installment"
	PaymentTypeDeposit     PaymentType = "deposit"
)

// InstallmentType records whether the chosen bank supports installments.
type InstallmentType string

// Possible installment types.
const (
	InstallmentAllowed    InstallmentType = "allowed"
	InstallmentNotAllowed InstallmentType = "not-allowed"
)

// ContactForm holds the contact sub-form fields. ContactNumber carries local
// digits only; the dial prefix lives in PhoneCode.
type ContactForm struct {
	FamilyName     string `json:"family_name"`
	GivenName      string `json:"given_name"`
	PhoneCode      string `json:"phone_code"`
	ContactNumber  string `json:"contact_number"`
	Email          string `json:"email"`
	BillingCountry string `json:"billing_country"`
}

// EnrollmentState is the aggregate root for one enrollment session. All
// mutation goes through the session service so these invariants hold after
// every write:
//   - non-installment types never carry provider/plan
//   - installment never carries option/method
//   - a set plan always belongs to the set provider
//   - a positive promo discount implies an applied promo
type EnrollmentState struct {
	Contact               ContactForm      `json:"contact"`
	PaymentType           *PaymentType     `json:"payment_type"`
	InstallmentType       InstallmentType  `json:"installment_type"`
	PaymentOption         *PaymentCategory `json:"payment_option"`
	PaymentMethodID       *string          `json:"payment_method_id"`
	InstallmentProviderID *string          `json:"installment_provider_id"`
	InstallmentPlan       *int             `json:"installment_plan"`
	Promocode             string           `json:"promocode"`
	PromocodeApplied      bool             `json:"promocode_applied"`
	PromocodeDiscount     decimal.Decimal  `json:"promocode_discount"`
	PromocodeLabel        string           `json:"promocode_label"`
	TermsAccepted         bool             `json:"terms_accepted"`
}

// DefaultEnrollmentState returns the state a fresh session starts with.
func DefaultEnrollmentState() EnrollmentState {
	full := PaymentTypeFull
	return EnrollmentState{
		PaymentType:       &full,
		InstallmentType:   InstallmentAllowed,
		PromocodeDiscount: decimal.Zero,
	}
}

// IsMalaysian reports whether billing is domestic, which selects the
// domestic eligibility flags on the package.
func (s EnrollmentState) IsMalaysian() bool {
	return s.Contact.BillingCountry == "MY"
}

// SubmissionStatus tracks the terminal submit flow of a session.
type SubmissionStatus string

// Possible submission statuses.
const (
	SubmissionNone     SubmissionStatus = "none"
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionComplete SubmissionStatus = "complete"
)

// Wizard step indices. Forward navigation is clamped to this range.
const (
	StepContact = 0
	StepPayment = 1
)

package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Contact field names in document order. FirstInvalid follows this order so
// the client can scroll to the topmost failing field.
var contactFieldOrder = []string{
	"family_name",
	"given_name",
	"phone_code",
	"contact_number",
	"email",
	"billing_country",
}

const (
	minLocalDigits = 7
	maxLocalDigits = 15
)

type contactCountryReader interface {
	CountryByCode(ctx context.Context, code string) (*models.Country, error)
}

// ContactValidator validates the contact sub-form. All fields are checked on
// every run so the result carries the complete error map, not just the first
// failure.
type ContactValidator struct {
	countries contactCountryReader
}

func NewContactValidator(countries contactCountryReader) *ContactValidator {
	return &ContactValidator{countries: countries}
}

// Validate checks the full contact form and returns the per-field error map.
// NormalizedNumber is populated only when the phone pair is valid.
func (v *ContactValidator) Validate(ctx context.Context, form models.ContactForm) dto.ContactValidationResult {
	errs := make(map[string]string)

	if strings.TrimSpace(form.FamilyName) == "" {
		errs["family_name"] = "Family name is required"
	}
	if strings.TrimSpace(form.GivenName) == "" {
		errs["given_name"] = "Given name is required"
	}

	ccDigits := digitsOnly(form.PhoneCode)
	if strings.TrimSpace(form.PhoneCode) == "" {
		errs["phone_code"] = "Phone code is required"
	}

	localRaw := strings.TrimSpace(form.ContactNumber)
	localDigits := digitsOnly(localRaw)
	switch {
	case localRaw == "":
		errs["contact_number"] = "Contact number is required"
	case localRaw != localDigits:
		errs["contact_number"] = "Contact number must contain digits only"
	case ccDigits == "60" && strings.HasPrefix(localDigits, "0"):
		errs["contact_number"] = "For +60 (Malaysia), do not start with 0. Example: 123456789"
	case len(localDigits) < minLocalDigits || len(localDigits) > maxLocalDigits:
		errs["contact_number"] = "Please enter a valid contact number"
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}

	country := strings.TrimSpace(form.BillingCountry)
	if country == "" {
		errs["billing_country"] = "Billing country is required"
	} else if _, err := v.countries.CountryByCode(ctx, country); err != nil {
		if isNotFound(err) {
			errs["billing_country"] = "Please select a valid billing country"
		} else {
			errs["billing_country"] = "Billing country could not be verified"
		}
	}

	result := dto.ContactValidationResult{Valid: len(errs) == 0}
	if len(errs) > 0 {
		result.Errors = errs
		for _, field := range contactFieldOrder {
			if _, ok := errs[field]; ok {
				result.FirstInvalid = field
				break
			}
		}
		return result
	}

	result.NormalizedNumber = "+" + ccDigits + localDigits
	return result
}

func isNotFound(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var appErr *appErrors.Error
	return errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

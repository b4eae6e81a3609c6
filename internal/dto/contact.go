package dto

// UpdateContactRequest mutates contact fields individually; nil fields are
// left untouched so the form can patch as the user types.
type UpdateContactRequest struct {
	FamilyName     *string `json:"family_name"`
	GivenName      *string `json:"given_name"`
	PhoneCode      *string `json:"phone_code"`
	ContactNumber  *string `json:"contact_number"`
	Email          *string `json:"email"`
	BillingCountry *string `json:"billing_country"`
}

// ContactValidationResult maps field names to error messages. FirstInvalid
// names the first failing field in document order so the client can scroll
// to it.
type ContactValidationResult struct {
	Valid            bool              `json:"valid"`
	Errors           map[string]string `json:"errors,omitempty"`
	FirstInvalid     string            `json:"first_invalid,omitempty"`
	NormalizedNumber string            `json:"normalized_number,omitempty"`
}

package dto

import "github.com/noah-isme/enroll-flow-api/internal/models"

// GoToStepRequest jumps to a wizard step directly (clamped server-side).
type GoToStepRequest struct {
	Step int `json:"step" validate:"gte=0,lte=1"`
}

// StepResult reports the wizard position after a navigation attempt.
// Contact holds field errors when the contact form blocked a forward
// transition; Message carries the section-level reason when the payment
// type or terms gate blocked it instead.
type StepResult struct {
	Step    int                      `json:"step"`
	Loading bool                     `json:"loading"`
	Message string                   `json:"message,omitempty"`
	Contact *ContactValidationResult `json:"contact,omitempty"`
}

// SubmitResult reports the terminal submission flow.
type SubmitResult struct {
	Status  models.SubmissionStatus  `json:"status"`
	Message string                   `json:"message,omitempty"`
	Payment *PaymentValidationResult `json:"payment,omitempty"`
}

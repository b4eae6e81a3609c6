package dto

import (
	"time"

	"github.com/noah-isme/enroll-flow-api/internal/models"
)

// CreateSessionRequest optionally pins the session to a package; the
// configured default package is used when empty.
type CreateSessionRequest struct {
	PackageID string `json:"package_id"`
}

// SessionResponse is the full observable session snapshot.
type SessionResponse struct {
	ID               string                  `json:"id"`
	PackageID        string                  `json:"package_id"`
	Step             int                     `json:"step"`
	Loading          bool                    `json:"loading"`
	Submission       models.SubmissionStatus `json:"submission"`
	State            models.EnrollmentState  `json:"state"`
	CreatedAt        time.Time               `json:"created_at"`
	RemainingSeconds int                     `json:"remaining_seconds"`
	ClockDisplay     string                  `json:"clock_display"`
}

// ClockResponse reports the session countdown.
type ClockResponse struct {
	RemainingSeconds int       `json:"remaining_seconds"`
	Display          string    `json:"display"`
	ExpiresAt        time.Time `json:"expires_at"`
}

package dto

import "time"

// ExportSummaryRequest selects the summary export format.
type ExportSummaryRequest struct {
	Format string `json:"format" validate:"required,oneof=pdf csv"`
}

// ExportSummaryResponse carries a signed download URL for the artifact.
type ExportSummaryResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

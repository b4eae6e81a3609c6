package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/models"
	"github.com/noah-isme/enroll-flow-api/internal/service"
	"github.com/noah-isme/enroll-flow-api/pkg/response"
)

// WizardHandler exposes the step navigation and submission endpoints.
type WizardHandler struct {
	wizard *service.WizardService
}

// NewWizardHandler constructs WizardHandler.
func NewWizardHandler(wizard *service.WizardService) *WizardHandler {
	return &WizardHandler{wizard: wizard}
}

func stepStatus(res *dto.StepResult) int {
	if res.Contact != nil && !res.Contact.Valid {
		return http.StatusBadRequest
	}
	if res.Message != "" {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

// Next godoc
// @Summary Advance to the payment step
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/steps/next [post]
func (h *WizardHandler) Next(c *gin.Context) {
	res, err := h.wizard.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, stepStatus(res), res, nil)
}

// Prev godoc
// @Summary Return to the contact step
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/steps/prev [post]
func (h *WizardHandler) Prev(c *gin.Context) {
	res, err := h.wizard.Prev(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// GoTo godoc
// @Summary Jump to a wizard step
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.GoToStepRequest true "Target step"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/step [put]
func (h *WizardHandler) GoTo(c *gin.Context) {
	var req dto.GoToStepRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.wizard.GoTo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, stepStatus(res), res, nil)
}

// Submit godoc
// @Summary Submit the enrollment
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /sessions/{id}/submit [post]
func (h *WizardHandler) Submit(c *gin.Context) {
	res, err := h.wizard.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusAccepted
	if res.Payment != nil && !res.Payment.Valid {
		status = http.StatusUnprocessableEntity
	} else if res.Status == models.SubmissionComplete {
		status = http.StatusOK
	}
	response.JSON(c, status, res, nil)
}

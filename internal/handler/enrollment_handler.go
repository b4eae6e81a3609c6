package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enroll-flow-api/internal/dto"
	"github.com/noah-isme/enroll-flow-api/internal/service"
	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
	"github.com/noah-isme/enroll-flow-api/pkg/response"
)

// EnrollmentHandler exposes the enrollment form endpoints: contact fields,
// payment selection, promocode and the pricing summary.
type EnrollmentHandler struct {
	sessions *service.SessionService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(sessions *service.SessionService) *EnrollmentHandler {
	return &EnrollmentHandler{sessions: sessions}
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// UpdateContact godoc
// @Summary Patch contact fields
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.UpdateContactRequest true "Contact patch"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/contact [patch]
func (h *EnrollmentHandler) UpdateContact(c *gin.Context) {
	var req dto.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.UpdateContact(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// ValidateContact godoc
// @Summary Validate the contact form
// @Tags Contact
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/contact/validate [post]
func (h *EnrollmentHandler) ValidateContact(c *gin.Context) {
	result, err := h.sessions.ValidateContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SetPaymentType godoc
// @Summary Set the payment type
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetPaymentTypeRequest true "Payment type"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/payment-type [put]
func (h *EnrollmentHandler) SetPaymentType(c *gin.Context) {
	var req dto.SetPaymentTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.SetPaymentType(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// SetInstallmentType godoc
// @Summary Record whether the chosen bank supports installments
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetInstallmentTypeRequest true "Installment type"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/installment-type [put]
func (h *EnrollmentHandler) SetInstallmentType(c *gin.Context) {
	var req dto.SetInstallmentTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.SetInstallmentType(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// SetPaymentOption godoc
// @Summary Pick the card/FPX branch
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetPaymentOptionRequest true "Payment option"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/payment-option [put]
func (h *EnrollmentHandler) SetPaymentOption(c *gin.Context) {
	var req dto.SetPaymentOptionRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.SetPaymentOption(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// SetPaymentMethod godoc
// @Summary Select a concrete payment method
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetPaymentMethodRequest true "Payment method"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/payment-method [put]
func (h *EnrollmentHandler) SetPaymentMethod(c *gin.Context) {
	var req dto.SetPaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.SetPaymentMethod(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// SetInstallmentProvider godoc
// @Summary Select an installment bank
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetInstallmentProviderRequest true "Provider"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/installment-provider [put]
func (h *EnrollmentHandler) SetInstallmentProvider(c *gin.Context) {
	var req dto.SetInstallmentProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.SetInstallmentProvider(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// SetInstallmentPlan godoc
// @Summary Select provider and tenure atomically
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetInstallmentPlanRequest true "Plan"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/installment-plan [put]
func (h *EnrollmentHandler) SetInstallmentPlan(c *gin.Context) {
	var req dto.SetInstallmentPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.SetInstallmentPlan(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// SetTerms godoc
// @Summary Toggle terms acceptance
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetTermsRequest true "Terms"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/terms [put]
func (h *EnrollmentHandler) SetTerms(c *gin.Context) {
	var req dto.SetTermsRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.SetTerms(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// ApplyPromocode godoc
// @Summary Apply a promocode
// @Tags Promo
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ApplyPromoRequest true "Promocode"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/promocode [post]
func (h *EnrollmentHandler) ApplyPromocode(c *gin.Context) {
	var req dto.ApplyPromoRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.sessions.ApplyPromocode(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, result, nil)
}

// Summary godoc
// @Summary Get the pricing summary
// @Tags Pricing
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/summary [get]
func (h *EnrollmentHandler) Summary(c *gin.Context) {
	summary, err := h.sessions.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

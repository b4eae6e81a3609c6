package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enroll-flow-api/internal/models"
	"github.com/noah-isme/enroll-flow-api/internal/service"
	"github.com/noah-isme/enroll-flow-api/pkg/response"
)

// CatalogHandler exposes the reference data endpoints the form is built
// from.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Bundle godoc
// @Summary Get the full reference data bundle
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog [get]
func (h *CatalogHandler) Bundle(c *gin.Context) {
	bundle, err := h.catalog.Bundle(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle, nil)
}

// Package godoc
// @Summary Get a package
// @Tags Catalog
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/packages/{id} [get]
func (h *CatalogHandler) Package(c *gin.Context) {
	pkg, err := h.catalog.PackageByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pkg, nil)
}

// Countries godoc
// @Summary List billing countries
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/countries [get]
func (h *CatalogHandler) Countries(c *gin.Context) {
	countries, err := h.catalog.Countries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, countries, nil)
}

// PhoneCodes godoc
// @Summary List dial prefixes
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/phone-codes [get]
func (h *CatalogHandler) PhoneCodes(c *gin.Context) {
	codes, err := h.catalog.PhoneCodes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, codes, nil)
}

// PaymentMethods godoc
// @Summary List payment methods
// @Tags Catalog
// @Produce json
// @Param category query string false "card or fpx"
// @Success 200 {object} response.Envelope
// @Router /catalog/payment-methods [get]
func (h *CatalogHandler) PaymentMethods(c *gin.Context) {
	category := models.PaymentCategory(c.Query("category"))
	methods, err := h.catalog.PaymentMethods(c.Request.Context(), category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, methods, nil)
}

// InstallmentProviders godoc
// @Summary List installment providers and their tenures
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/installment-providers [get]
func (h *CatalogHandler) InstallmentProviders(c *gin.Context) {
	providers, err := h.catalog.InstallmentProviders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, providers, nil)
}

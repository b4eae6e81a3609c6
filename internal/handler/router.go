package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enroll-flow-api/internal/middleware"
	"github.com/noah-isme/enroll-flow-api/internal/service"
)

// Services bundles everything the HTTP surface is built from.
type Services struct {
	Sessions         *service.SessionService
	Wizard           *service.WizardService
	Catalog          *service.CatalogService
	Exports          *service.ExportService
	Metrics          *service.MetricsService
	DefaultPackageID string
}

// RegisterRoutes mounts the enrollment API under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, svcs Services) {
	r.Use(middleware.Metrics(svcs.Metrics))

	metricsHandler := NewMetricsHandler(svcs.Metrics)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(prefix)

	catalog := NewCatalogHandler(svcs.Catalog)
	api.GET("/catalog", catalog.Bundle)
	api.GET("/catalog/packages/:id", catalog.Package)
	api.GET("/catalog/countries", catalog.Countries)
	api.GET("/catalog/phone-codes", catalog.PhoneCodes)
	api.GET("/catalog/payment-methods", catalog.PaymentMethods)
	api.GET("/catalog/installment-providers", catalog.InstallmentProviders)

	sessions := NewSessionHandler(svcs.Sessions, svcs.DefaultPackageID)
	api.POST("/sessions", sessions.Create)
	api.GET("/sessions/:id", sessions.Get)
	api.DELETE("/sessions/:id", sessions.Delete)
	api.POST("/sessions/:id/reset", sessions.Reset)
	api.GET("/sessions/:id/clock", sessions.Clock)

	enrollment := NewEnrollmentHandler(svcs.Sessions)
	api.PATCH("/sessions/:id/contact", enrollment.UpdateContact)
	api.POST("/sessions/:id/contact/validate", enrollment.ValidateContact)
	api.PUT("/sessions/:id/payment-type", enrollment.SetPaymentType)
	api.PUT("/sessions/:id/installment-type", enrollment.SetInstallmentType)
	api.PUT("/sessions/:id/payment-option", enrollment.SetPaymentOption)
	api.PUT("/sessions/:id/payment-method", enrollment.SetPaymentMethod)
	api.PUT("/sessions/:id/installment-provider", enrollment.SetInstallmentProvider)
	api.PUT("/sessions/:id/installment-plan", enrollment.SetInstallmentPlan)
	api.PUT("/sessions/:id/terms", enrollment.SetTerms)
	api.POST("/sessions/:id/promocode", enrollment.ApplyPromocode)
	api.GET("/sessions/:id/summary", enrollment.Summary)

	wizard := NewWizardHandler(svcs.Wizard)
	api.POST("/sessions/:id/steps/next", wizard.Next)
	api.POST("/sessions/:id/steps/prev", wizard.Prev)
	api.PUT("/sessions/:id/step", wizard.GoTo)
	api.POST("/sessions/:id/submit", wizard.Submit)

	if svcs.Exports != nil {
		exports := NewExportHandler(svcs.Exports)
		api.POST("/sessions/:id/summary/export", exports.Export)
		api.GET("/exports/download", exports.Download)
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/internal/repository"
	"github.com/noah-isme/enroll-flow-api/internal/service"
	"github.com/noah-isme/enroll-flow-api/pkg/config"
	"github.com/noah-isme/enroll-flow-api/pkg/response"
)

func newTestRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := service.NewCatalogService(repository.NewStaticCatalog(), nil, 0, zap.NewNop())
	contacts := service.NewContactValidator(catalog)
	payments := service.NewPaymentSelectionValidator(catalog)
	anchors := repository.NewSessionAnchorRepository(nil, "")

	sessionCfg := config.SessionConfig{Duration: time.Minute, ExpiryGrace: time.Millisecond}
	promoCfg := config.PromoConfig{
		MinLength:       5,
		ApplyDelay:      0,
		Code:            "SAVE20",
		DiscountPercent: 20,
		Label:           "20% Off Promocode Applied",
	}
	sessions := service.NewSessionService(catalog, service.NewPricingService(), contacts, anchors, nil, sessionCfg, promoCfg, zap.NewNop())

	wizard := service.NewWizardService(sessions, contacts, payments, nil, config.WizardConfig{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	wizard.Start(ctx)

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Services{
		Sessions:         sessions,
		Wizard:           wizard,
		Catalog:          catalog,
		DefaultPackageID: "pkg-001",
	})

	return r, func() {
		cancel()
		wizard.Stop()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env response.Envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCatalogEndpoints(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()

	rec, env := doJSON(t, r, http.MethodGet, "/api/v1/catalog/packages/pkg-001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "pkg-001", data["id"])

	rec, _ = doJSON(t, r, http.MethodGet, "/api/v1/catalog/packages/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = doJSON(t, r, http.MethodGet, "/api/v1/catalog/payment-methods?category=card", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	methods := env.Data.([]interface{})
	assert.Len(t, methods, 3)
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()
	id := createSession(t, r)

	rec, env := doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["step"])

	rec, _ = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/clock", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/reset", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/v1/sessions/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactAndStepFlow(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()
	id := createSession(t, r)

	// blocked while the contact form is empty
	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/steps/next", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["step"])

	patch := map[string]string{
		"family_name":     "Tan",
		"given_name":      "Mei",
		"phone_code":      "+60",
		"contact_number":  "123456789",
		"email":           "mei.tan@example.com",
		"billing_country": "MY",
	}
	rec, _ = doJSON(t, r, http.MethodPatch, "/api/v1/sessions/"+id+"/contact", patch)
	require.Equal(t, http.StatusOK, rec.Code)

	// still blocked until the terms are accepted
	rec, env = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/steps/next", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	data = env.Data.(map[string]interface{})
	assert.Equal(t, "You must accept the terms to continue", data["message"])

	rec, _ = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/terms", map[string]bool{"accepted": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/steps/next", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data = env.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["step"])

	rec, env = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/steps/prev", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data = env.Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["step"])
}

func TestMalaysiaPhoneRuleOverHTTP(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()
	id := createSession(t, r)

	patch := map[string]string{
		"family_name":     "Tan",
		"given_name":      "Mei",
		"phone_code":      "+60",
		"contact_number":  "0123456789",
		"email":           "mei.tan@example.com",
		"billing_country": "MY",
	}
	rec, _ := doJSON(t, r, http.MethodPatch, "/api/v1/sessions/"+id+"/contact", patch)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/contact/validate", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, false, data["valid"])
	errs := data["errors"].(map[string]interface{})
	assert.Equal(t, "For +60 (Malaysia), do not start with 0. Example: 123456789", errs["contact_number"])
}

func TestPromocodeEndpoint(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()
	id := createSession(t, r)

	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/promocode", map[string]string{"code": "AB"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "Invalid promocode", data["message"])

	rec, env = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/promocode", map[string]string{"code": "SAVE20"})
	assert.Equal(t, http.StatusOK, rec.Code)
	data = env.Data.(map[string]interface{})
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "636", data["discount"])
}

func TestSummaryEndpointAfterSelections(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()
	id := createSession(t, r)

	rec, _ := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/payment-type", map[string]string{"payment_type": "deposit"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id+"/summary", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "RM 318.00", data["formatted_payable"])
}

func TestInstallmentSelectionEndpoints(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()
	id := createSession(t, r)

	rec, _ := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/payment-type", map[string]string{"payment_type": "installment"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/installment-plan", map[string]interface{}{"provider_id": "cimb", "months": 24})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/installment-plan", map[string]interface{}{"provider_id": "cimb", "months": 12})
	assert.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]interface{})
	state := data["state"].(map[string]interface{})
	assert.Equal(t, float64(12), state["installment_plan"])
}

func TestSubmitEndpoint(t *testing.T) {
	r, stop := newTestRouter(t)
	defer stop()
	id := createSession(t, r)

	// invalid payment selection first
	rec, env := doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	data := env.Data.(map[string]interface{})
	assert.Equal(t, "Please select a payment method", data["message"])

	rec, _ = doJSON(t, r, http.MethodPut, "/api/v1/sessions/"+id+"/payment-option", map[string]string{"payment_option": "card"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = doJSON(t, r, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	data = env.Data.(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
}

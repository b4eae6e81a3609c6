package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Enroll Flow API",
        "description": "Course enrollment form service: sessions, wizard, pricing and exports",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Reference data the form is built from"},
        {"name": "Sessions", "description": "Enrollment session lifecycle"},
        {"name": "Contact", "description": "Contact sub-form"},
        {"name": "Payment", "description": "Payment selection"},
        {"name": "Promo", "description": "Promocode application"},
        {"name": "Pricing", "description": "Derived pricing summary"},
        {"name": "Wizard", "description": "Step navigation and submission"},
        {"name": "Exports", "description": "Summary exports and signed downloads"}
    ],
    "paths": {
        "/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get the full reference data bundle",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/packages/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get a package",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/catalog/countries": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List billing countries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/phone-codes": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List dial prefixes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/payment-methods": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List payment methods",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string", "enum": ["card", "fpx"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/installment-providers": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List installment providers and their tenures",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open an enrollment session",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get a session snapshot",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Tear a session down",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No content"}
                }
            }
        },
        "/sessions/{id}/reset": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Reset a session to its initial state",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/clock": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get the session countdown",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Session expired"}
                }
            }
        },
        "/sessions/{id}/contact": {
            "patch": {
                "tags": ["Contact"],
                "summary": "Patch contact fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateContactRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/contact/validate": {
            "post": {
                "tags": ["Contact"],
                "summary": "Validate the contact form",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/payment-type": {
            "put": {
                "tags": ["Payment"],
                "summary": "Set the payment type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPaymentTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/installment-type": {
            "put": {
                "tags": ["Payment"],
                "summary": "Record whether the chosen bank supports installments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetInstallmentTypeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/payment-option": {
            "put": {
                "tags": ["Payment"],
                "summary": "Pick the card/FPX branch",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPaymentOptionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/payment-method": {
            "put": {
                "tags": ["Payment"],
                "summary": "Select a concrete payment method",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPaymentMethodRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/installment-provider": {
            "put": {
                "tags": ["Payment"],
                "summary": "Select an installment bank",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetInstallmentProviderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/installment-plan": {
            "put": {
                "tags": ["Payment"],
                "summary": "Select provider and tenure atomically",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetInstallmentPlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Tenure not offered by the provider"}
                }
            }
        },
        "/sessions/{id}/terms": {
            "put": {
                "tags": ["Payment"],
                "summary": "Toggle terms acceptance",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetTermsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/promocode": {
            "post": {
                "tags": ["Promo"],
                "summary": "Apply a promocode",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyPromoRequest"}}
                ],
                "responses": {
                    "200": {"description": "Applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Application already in flight"},
                    "422": {"description": "Rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/summary": {
            "get": {
                "tags": ["Pricing"],
                "summary": "Get the pricing summary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/steps/next": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Advance to the payment step",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Advanced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Blocked by the contact, payment type, or terms gate", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/steps/prev": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Return to the contact step",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/step": {
            "put": {
                "tags": ["Wizard"],
                "summary": "Jump to a wizard step",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GoToStepRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Blocked by the contact, payment type, or terms gate"}
                }
            }
        },
        "/sessions/{id}/submit": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Submit the enrollment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Blocked by payment validation"}
                }
            }
        },
        "/sessions/{id}/summary/export": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export the pricing summary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportSummaryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an exported summary",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Invalid or expired token"}
                }
            }
        }
    },
    "definitions": {
        "CreateSessionRequest": {
            "type": "object",
            "properties": {
                "package_id": {"type": "string"}
            }
        },
        "UpdateContactRequest": {
            "type": "object",
            "properties": {
                "family_name": {"type": "string"},
                "given_name": {"type": "string"},
                "phone_code": {"type": "string"},
                "contact_number": {"type": "string"},
                "email": {"type": "string"},
                "billing_country": {"type": "string"}
            }
        },
        "SetPaymentTypeRequest": {
            "type": "object",
            "required": ["payment_type"],
            "properties": {
                "payment_type": {"type": "string", "enum": ["full", "installment", "deposit"]}
            }
        },
        "SetInstallmentTypeRequest": {
            "type": "object",
            "required": ["installment_type"],
            "properties": {
                "installment_type": {"type": "string", "enum": ["allowed", "not-allowed"]}
            }
        },
        "SetPaymentOptionRequest": {
            "type": "object",
            "required": ["payment_option"],
            "properties": {
                "payment_option": {"type": "string", "enum": ["card", "fpx"]}
            }
        },
        "SetPaymentMethodRequest": {
            "type": "object",
            "required": ["payment_method_id"],
            "properties": {
                "payment_method_id": {"type": "string"}
            }
        },
        "SetInstallmentProviderRequest": {
            "type": "object",
            "required": ["provider_id"],
            "properties": {
                "provider_id": {"type": "string"}
            }
        },
        "SetInstallmentPlanRequest": {
            "type": "object",
            "required": ["provider_id", "months"],
            "properties": {
                "provider_id": {"type": "string"},
                "months": {"type": "integer"}
            }
        },
        "SetTermsRequest": {
            "type": "object",
            "properties": {
                "accepted": {"type": "boolean"}
            }
        },
        "ApplyPromoRequest": {
            "type": "object",
            "required": ["code"],
            "properties": {
                "code": {"type": "string"}
            }
        },
        "GoToStepRequest": {
            "type": "object",
            "properties": {
                "step": {"type": "integer"}
            }
        },
        "ExportSummaryRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["pdf", "csv"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

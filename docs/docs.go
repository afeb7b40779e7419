// Package docs registers the InvoNest OpenAPI document with swag.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/invoices/calculate": {
            "post": {
                "description": "Computes per-line and invoice-level CGST/SGST or IGST from line items and the seller and buyer states. Seller and buyer states must be registry names, abbreviations or GST state codes; anything else is MISSING_STATE. Each line is rounded to paise for display while invoice totals are rounded from unrounded sums, so the sum of items[] may differ from the totals by up to one paisa per line; the totals are authoritative.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Calculate GST for an invoice",
                "parameters": [
                    {"description": "Line items and parties", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CalculateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Calculated invoice", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Malformed request body", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "Too many line items", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Insufficient input, missing state or unresolved tax rate", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/invoices/calculate/export": {
            "post": {
                "description": "Calculates the invoice and returns it as a CSV (UTF-8 with BOM) or XLSX download.",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["invoices"],
                "summary": "Export a calculated invoice",
                "parameters": [
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "csv", "description": "Export format", "name": "format", "in": "query"},
                    {"description": "Line items and parties", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CalculateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Exported invoice", "schema": {"type": "file"}},
                    "400": {"description": "Malformed request body or unsupported format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Insufficient input, missing state or unresolved tax rate", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/invoices/verify": {
            "post": {
                "description": "Runs every built-in rule against a complete invoice and reports per-rule and per-field results.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "Verify a GST invoice",
                "parameters": [
                    {"description": "Invoice to verify", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GSTInvoice"}}
                ],
                "responses": {
                    "200": {"description": "Verification report", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Malformed request body", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/invoices/rules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invoices"],
                "summary": "List verification rules",
                "responses": {
                    "200": {"description": "Registered rules", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/hsn/{code}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Look up GST rates for an HSN/SAC code",
                "parameters": [
                    {"type": "string", "description": "HSN or SAC code", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Rate entries", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Code not in the HSN master", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/states": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "List Indian states and union territories",
                "responses": {
                    "200": {"description": "State registry", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        }
    },
    "definitions": {
        "domain.CalculateRequest": {
            "type": "object",
            "properties": {
                "buyerState": {"type": "string", "example": "Karnataka"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/domain.LineItemInput"}},
                "sellerState": {"type": "string", "example": "Maharashtra"}
            }
        },
        "domain.LineItemInput": {
            "type": "object",
            "properties": {
                "description": {"type": "string", "example": "Website development"},
                "discountPercent": {"type": "number", "example": 0},
                "hsnCode": {"type": "string", "example": "998314"},
                "quantity": {"type": "number", "example": 2},
                "rate": {"type": "number", "example": 1000},
                "taxRatePercent": {"type": "number", "example": 18},
                "unit": {"type": "string", "example": "Nos"}
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.GSTInvoice": {
            "type": "object",
            "properties": {
                "buyer": {"type": "object"},
                "invoice": {"type": "object"},
                "lineItems": {"type": "array", "items": {"type": "object"}},
                "seller": {"type": "object"},
                "totals": {"type": "object"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean", "example": true}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "InvoNest API",
	Description:      "GST invoice calculation, verification and export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

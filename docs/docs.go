// Package docs holds the OpenAPI description served at /swagger. Regenerate with
// `swag init -g cmd/app/main.go` after changing controller annotations.
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
        "/import/students": {
            "post": {
                "description": "Uses the uploaded file, or the configured default path when no file is sent.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Import"],
                "summary": "Import students from CSV",
                "parameters": [
                    {"type": "file", "description": "Students CSV", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/import/transactions": {
            "post": {
                "description": "Uses the uploaded file, or the configured default path when no file is sent.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Import"],
                "summary": "Import transactions from CSV",
                "parameters": [
                    {"type": "file", "description": "Transactions CSV", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "description": "Paginated transactions joined with student contact details. Transactions without a known student are omitted.",
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Pending, Success or Failed", "name": "status", "in": "query"},
                    {"type": "string", "description": "Case-insensitive match on collect_id or custom_order_id", "name": "searchTerm", "in": "query"},
                    {"type": "string", "description": "Inclusive lower bound (YYYY-MM-DD)", "name": "startDate", "in": "query"},
                    {"type": "string", "description": "Inclusive upper bound (YYYY-MM-DD)", "name": "endDate", "in": "query"},
                    {"type": "string", "description": "transaction_date, order_amount or transaction_amount", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "sortOrder", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.ListResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"type": "array", "items": {"$ref": "#/definitions/response_models.TransactionView"}}
                                    }
                                }
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/transactions/check-status/{custom_order_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "Check transaction status",
                "parameters": [
                    {"type": "string", "description": "Custom order ID (ORD followed by at least 4 digits)", "name": "custom_order_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/response_models.StatusResponse"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/transactions/collect/{collect_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "Get a transaction by collect ID",
                "parameters": [
                    {"type": "string", "description": "Collect ID", "name": "collect_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/db_models.Transaction"}}}
                            ]
                        }
                    },
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/transactions/manual-update": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "Manually set a transaction status",
                "parameters": [
                    {"description": "Order and new status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request_models.ManualUpdateRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/db_models.Transaction"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/transactions/school/{school_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Transactions"],
                "summary": "List transactions of a school",
                "parameters": [
                    {"type": "string", "description": "School ID (SCH followed by at least 3 digits)", "name": "school_id", "in": "path", "required": true},
                    {"type": "string", "description": "Inclusive lower bound (YYYY-MM-DD)", "name": "startDate", "in": "query"},
                    {"type": "string", "description": "Inclusive upper bound (YYYY-MM-DD)", "name": "endDate", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/response_models.TransactionView"}}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/webhook/transaction-status": {
            "post": {
                "description": "Status 200 marks the transaction Success, any other number marks it Failed. order_info.order_id is matched against collect_id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Webhook"],
                "summary": "Payment gateway status callback",
                "parameters": [
                    {"description": "Gateway callback", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request_models.WebhookRequest"}}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/utils.APIResponse"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/db_models.Transaction"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "db_models.Transaction": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created_at": {"type": "integer"},
                "updated_at": {"type": "integer"},
                "collect_id": {"type": "string"},
                "school_id": {"type": "string"},
                "student_id": {"type": "string"},
                "gateway": {"type": "string"},
                "order_amount": {"type": "number"},
                "transaction_amount": {"type": "number"},
                "status": {"type": "string", "enum": ["Pending", "Success", "Failed"]},
                "custom_order_id": {"type": "string"},
                "transaction_date": {"type": "string"},
                "bank_reference": {"type": "string"}
            }
        },
        "request_models.ManualUpdateRequest": {
            "type": "object",
            "required": ["custom_order_id", "new_status"],
            "properties": {
                "custom_order_id": {"type": "string", "example": "ORD1234"},
                "new_status": {"type": "string", "enum": ["Pending", "Success", "Failed"]}
            }
        },
        "request_models.OrderInfo": {
            "type": "object",
            "required": ["bank_reference", "gateway", "order_amount", "order_id", "transaction_amount"],
            "properties": {
                "order_id": {"type": "string", "example": "ORD1234"},
                "order_amount": {"type": "number"},
                "transaction_amount": {"type": "number"},
                "gateway": {"type": "string"},
                "bank_reference": {"type": "string"}
            }
        },
        "request_models.WebhookRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "integer", "example": 200},
                "order_info": {"$ref": "#/definitions/request_models.OrderInfo"}
            }
        },
        "response_models.StatusResponse": {
            "type": "object",
            "properties": {
                "custom_order_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "response_models.TransactionView": {
            "type": "object",
            "properties": {
                "collect_id": {"type": "string"},
                "school_id": {"type": "string"},
                "student_id": {"type": "string"},
                "gateway": {"type": "string"},
                "order_amount": {"type": "number"},
                "transaction_amount": {"type": "number"},
                "status": {"type": "string"},
                "custom_order_id": {"type": "string"},
                "transaction_date": {"type": "string"},
                "bank_reference": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "trace_id": {"type": "string"},
                "data": {}
            }
        },
        "utils.ListResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "page": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "totalRecords": {"type": "integer"},
                "trace_id": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "School Payments API",
	Description:      "Query and update school fee payment transactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the swagger document served under /swagger/*.
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
        "/api/v1/dispatches": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "summary": "List recent dispatch runs",
                "operationId": "ListDispatches",
                "parameters": [
                    {
                        "enum": ["received", "validated", "warehouse_assigned", "submitted", "duplicate_rejected", "failed", "aborted"],
                        "type": "string",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "maximum": 500,
                        "minimum": 1,
                        "type": "integer",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Dispatch runs, newest first",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/DispatchRun"}}
                    },
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Start a dispatch run",
                "operationId": "TriggerDispatch",
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/TriggerDispatchRequest"}
                    }
                ],
                "responses": {
                    "202": {"description": "Run accepted", "schema": {"$ref": "#/definitions/DispatchAccepted"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Dispatch id already used", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/dispatches/{dispatchId}": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "summary": "Get one dispatch run",
                "operationId": "GetDispatch",
                "parameters": [
                    {"type": "string", "name": "dispatchId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "The dispatch run", "schema": {"$ref": "#/definitions/DispatchRun"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/warehouses": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "summary": "List registered warehouse nodes",
                "operationId": "ListWarehouses",
                "responses": {
                    "200": {
                        "description": "Warehouse nodes ordered by id",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/Warehouse"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "TriggerDispatchRequest": {
            "type": "object",
            "properties": {
                "dispatch_id": {"type": "string"},
                "conf": {"type": "object", "additionalProperties": true}
            }
        },
        "DispatchAccepted": {
            "type": "object",
            "properties": {
                "dispatch_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string"},
                "customer_name": {"type": "string"},
                "region": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "DispatchRun": {
            "type": "object",
            "properties": {
                "dispatch_id": {"type": "string"},
                "status": {"type": "string"},
                "order": {"$ref": "#/definitions/Order"},
                "warehouse_id": {"type": "string"},
                "was_fallback": {"type": "boolean"},
                "attempts": {"type": "integer"},
                "last_error": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "Warehouse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "base_address": {"type": "string"}
            }
        },
        "Error": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Order Dispatch API",
	Description:      "Triggers order dispatch runs and reports their progress.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

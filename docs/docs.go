// Package docs registers the OpenAPI description of the order API with swag.
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
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/orders/{table_id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "List table orders",
                "parameters": [
                    {"type": "integer", "description": "Table ID", "name": "table_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.itemsResponse"}},
                    "400": {"description": "Bad Request"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Place order",
                "parameters": [
                    {"type": "integer", "description": "Table ID", "name": "table_id", "in": "path", "required": true},
                    {"description": "Items to order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.placeOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.itemsResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/orders/{table_id}/items/{item_id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get item",
                "parameters": [
                    {"type": "integer", "description": "Table ID", "name": "table_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Item ID", "name": "item_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Item"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/orders/{table_id}/{item_id}": {
            "delete": {
                "summary": "Remove item",
                "parameters": [
                    {"type": "integer", "description": "Table ID", "name": "table_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Item ID", "name": "item_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    },
    "definitions": {
        "api.itemsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}}
            }
        },
        "api.placeOrderRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "order.Item": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "item_id": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Restaurant Orders API",
	Description:      "Tracks the items currently ordered for each restaurant table.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

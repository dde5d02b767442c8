// Package docs holds the Swagger description of the HTTP API, served at /swagger/index.html.
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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "in": "header",
            "name": "x-api-key"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/query": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["query"],
                "summary": "Answer a question about the caller's surroundings",
                "parameters": [
                    {
                        "description": "Query and coordinates",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.QueryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.QueryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/search-location": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Geocode a place, gather articles and store it",
                "parameters": [
                    {
                        "description": "Place name",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.SearchLocationRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SearchLocationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/locations": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "List stored locations, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListLocationsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/locations/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Get a stored location with its articles",
                "parameters": [
                    {"type": "integer", "description": "Location id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LocationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.QueryRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "What is this building?"},
                "latitude": {"type": "number", "example": 48.8584},
                "longitude": {"type": "number", "example": 2.2945}
            }
        },
        "handler.QueryResponse": {
            "type": "object",
            "properties": {"answer": {"type": "string"}}
        },
        "handler.SearchLocationRequest": {
            "type": "object",
            "properties": {"location": {"type": "string", "example": "Paris, France"}}
        },
        "handler.SearchLocationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "handler.ListLocationsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "locations": {"type": "array", "items": {"$ref": "#/definitions/models.LocationSummary"}}
            }
        },
        "handler.LocationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "location_name": {"type": "string"},
                "articles": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "models.LocationSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "location_name": {"type": "string"},
                "created_at": {"type": "string"}
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
	Title:            "Tacitus API",
	Description:      "Location-aware question answering backed by Wikipedia and a language model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs holds the generated OpenAPI document served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/assets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "List catalog assets",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assets"],
                "summary": "Create a catalog asset",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/assets/bulk": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["bulk"],
                "summary": "Run a bulk action over assets, streaming progress",
                "responses": {"200": {"description": "event stream"}}
            }
        },
        "/assets/bulk/ids": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bulk"],
                "summary": "List every asset ID matching the current filters",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/assets/{asset_id}/approve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Approve an asset into its next workflow state",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/assets/{asset_id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "List workflow decisions for an asset",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/assets/{asset_id}/timeline": {
            "get": {
                "produces": ["application/json"],
                "tags": ["workflow"],
                "summary": "Derive the stage timeline for an asset",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/bulk/operations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bulk"],
                "summary": "List recent bulk operations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/bulk/selection": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["selection"],
                "summary": "Read the session selection for a context",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List platform users",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "List recent activity entries",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Conductor Admin API",
	Description:      "Internal admin dashboard backend for the media licensing platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

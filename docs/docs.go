// Package docs holds the generated Swagger specification.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{escape .Title}}",
        "version": "{{escape .Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/documents": {
            "get": {
                "summary": "List documents visible to the requester",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-User-ID", "in": "header", "type": "string", "required": true},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"},
                    {"name": "priority", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "responsible_person", "in": "query", "type": "string"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "company_id", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Create a document and register its permissions",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-User-ID", "in": "header", "type": "string", "required": true},
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "priority", "in": "formData", "type": "string", "required": true},
                    {"name": "status", "in": "formData", "type": "string", "required": true},
                    {"name": "link", "in": "formData", "type": "string"},
                    {"name": "owner", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "type": "file"},
                    {"name": "company_id", "in": "query", "type": "string"}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/documents/{id}": {
            "put": {
                "summary": "Update a document, its status or its owner",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-User-ID", "in": "header", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "title", "in": "formData", "type": "string"},
                    {"name": "priority", "in": "formData", "type": "string"},
                    {"name": "status", "in": "formData", "type": "string"},
                    {"name": "link", "in": "formData", "type": "string"},
                    {"name": "owner", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "type": "file"},
                    {"name": "company_id", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "summary": "Delete a document and revoke its permissions",
                "parameters": [
                    {"name": "X-User-ID", "in": "header", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "company_id", "in": "query", "type": "string"}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/direct-reports/{id}/documents": {
            "get": {
                "summary": "List documents tracked for one user with permissions",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-User-ID", "in": "header", "type": "string", "required": true},
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
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
	Title:            "OKR Hub API",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package swagger provides API documentation
package swagger

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
        "/v1/auth/register": {"post": {"tags": ["Auth"], "summary": "Register a new account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/v1/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in and open a session", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/v1/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Close the current session", "responses": {"200": {"description": "OK"}}}},
        "/v1/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["Auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/v1/auth/stats": {"get": {"tags": ["Auth"], "summary": "Registered user count", "responses": {"200": {"description": "OK"}}}},
        "/v1/ai/providers": {"get": {"tags": ["AI"], "summary": "Configured provider chains", "responses": {"200": {"description": "OK"}}}},
        "/v1/ai/image": {"post": {"security": [{"BearerAuth": []}], "tags": ["AI"], "summary": "Generate an image for diary content", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}, "502": {"description": "Bad Gateway"}}}},
        "/v1/ai/quote": {"post": {"security": [{"BearerAuth": []}], "tags": ["AI"], "summary": "Generate a short quote", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}},
        "/v1/ai/prompt": {"post": {"security": [{"BearerAuth": []}], "tags": ["AI"], "summary": "Generate an image prompt", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}},
        "/v1/ai/insight": {"post": {"security": [{"BearerAuth": []}], "tags": ["AI"], "summary": "Summarise recent diaries", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/v1/diaries": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "List diaries", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "Create a diary", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/diaries/preview": {"post": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "Preview image and quote for unsaved content", "responses": {"200": {"description": "OK"}, "429": {"description": "Too Many Requests"}}}},
        "/v1/diaries/quick": {"post": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "Quick diary entry", "responses": {"201": {"description": "Created"}}}},
        "/v1/diaries/date/{date}": {"get": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "Diaries on a date", "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/v1/diaries/month/{year}/{month}": {"get": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "Diaries in a month", "parameters": [{"type": "integer", "name": "year", "in": "path", "required": true}, {"type": "integer", "name": "month", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/v1/diaries/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "Get a diary", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Diaries"], "summary": "Delete a diary", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/v1/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["Dashboard"], "summary": "Mood dashboard", "parameters": [{"type": "integer", "name": "year", "in": "query"}], "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MoodCanvas API",
	Description:      "Mood diary service with AI generated images, quotes and insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go`.
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
        "/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}}},
        "/login": {"post": {"tags": ["auth"], "summary": "Login user", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}},
        "/logout": {"get": {"tags": ["auth"], "summary": "Logout user", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/me": {
            "get": {"tags": ["users"], "summary": "Own account with recent logins", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "patch": {"tags": ["users"], "summary": "Update own profile", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/me/picture": {"post": {"tags": ["users"], "summary": "Presigned upload for a new profile picture", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}},
        "/me/picture/confirm": {"post": {"tags": ["users"], "summary": "Use an uploaded picture as the profile picture", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}},
        "/me/dashboard": {"get": {"tags": ["users"], "summary": "Listings owned and liked by the caller", "security": [{"CookieAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/users/{id}": {"get": {"tags": ["users"], "summary": "Public profile", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/catalog": {
            "get": {"tags": ["catalog"], "summary": "List all listings", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["catalog"], "summary": "Create a listing", "security": [{"CookieAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/catalog/latest": {"get": {"tags": ["catalog"], "summary": "The three newest listings", "responses": {"200": {"description": "OK"}}}},
        "/catalog/{id}": {
            "get": {"tags": ["catalog"], "summary": "Listing details", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["catalog"], "summary": "Update a listing", "security": [{"CookieAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["catalog"], "summary": "Delete a listing", "security": [{"CookieAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/catalog/{id}/interact": {"get": {"tags": ["catalog"], "summary": "Like a listing", "security": [{"CookieAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}},
        "/catalog/{id}/play": {"post": {"tags": ["catalog"], "summary": "Count a play", "security": [{"CookieAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/rankings/top-played": {"get": {"tags": ["rankings"], "summary": "Five most played listings", "responses": {"200": {"description": "OK"}}}},
        "/rankings/most-viewed": {"get": {"tags": ["rankings"], "summary": "Most viewed listings", "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/rankings/most-liked": {"get": {"tags": ["rankings"], "summary": "Most liked listings", "parameters": [{"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}}
    },
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "name": "token", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Game Catalog API",
	Description:      "Browser game catalog with cookie sessions, likes, plays and rankings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

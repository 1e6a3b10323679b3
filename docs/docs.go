// Package docs holds the OpenAPI description served at /swagger/.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/bot/chat": {
            "post": {
                "tags": ["bot"],
                "summary": "Send a message to the recommendation bot",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/botChatRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Empty message"}}
            }
        },
        "/api/bot/history/{sessionId}": {
            "get": {
                "tags": ["bot"],
                "summary": "Conversation history",
                "parameters": [{"in": "path", "name": "sessionId", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/bot/reset": {
            "post": {
                "tags": ["bot"],
                "summary": "Start a new conversation",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/listings": {
            "get": {
                "tags": ["listings"],
                "summary": "List listings",
                "parameters": [
                    {"in": "query", "name": "category", "type": "string"},
                    {"in": "query", "name": "search", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["listings"],
                "summary": "Create a listing",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/bookings": {
            "post": {
                "tags": ["bookings"],
                "summary": "Request a booking",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/chats/booking/{bookingId}/message": {
            "post": {
                "tags": ["chats"],
                "summary": "Send a message in a booking chat",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "bookingId", "required": true, "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Booking not confirmed"}}
            }
        },
        "/api/auth/signup": {
            "post": {"tags": ["users"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["users"], "summary": "Exchange credentials for a bearer token", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "botChatRequest": {
            "type": "object",
            "properties": {
                "sessionId": {"type": "string"},
                "message": {"type": "string"}
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
	Title:            "Wanderlust API",
	Description:      "Property listings, bookings, booking chats and the recommendation bot.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

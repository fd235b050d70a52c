// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing handler
// annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}",
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"}
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "tags": ["Status"],
                "summary": "Service banner",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/status": {
            "get": {
                "tags": ["Status"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/predict": {
            "get": {
                "tags": ["Safety"],
                "summary": "Risk assessment for a coordinate",
                "parameters": [
                    {"name": "lat", "in": "query", "type": "number", "required": true},
                    {"name": "lon", "in": "query", "type": "number", "required": true}
                ],
                "responses": {
                    "200": {"description": "Risk band, incident category and safety probability"},
                    "400": {"description": "Invalid coordinates"}
                }
            }
        },
        "/api/v1/police": {
            "get": {
                "tags": ["Safety"],
                "summary": "Safe havens near a coordinate",
                "parameters": [
                    {"name": "lat", "in": "query", "type": "number", "required": true},
                    {"name": "lon", "in": "query", "type": "number", "required": true},
                    {"name": "radius_km", "in": "query", "type": "number"}
                ],
                "responses": {
                    "200": {"description": "Nearby safe havens, nearest first"},
                    "400": {"description": "Invalid coordinates"}
                }
            }
        },
        "/api/v1/route": {
            "get": {
                "tags": ["Routing"],
                "summary": "Fastest and safest routes between two points",
                "parameters": [
                    {"name": "start_lat", "in": "query", "type": "number", "required": true},
                    {"name": "start_lon", "in": "query", "type": "number", "required": true},
                    {"name": "end_lat", "in": "query", "type": "number", "required": true},
                    {"name": "end_lon", "in": "query", "type": "number", "required": true}
                ],
                "responses": {
                    "200": {"description": "Fast and safe polylines; either may be empty"},
                    "400": {"description": "Invalid coordinates"}
                }
            }
        },
        "/api/v1/location": {
            "get": {
                "tags": ["Device"],
                "summary": "Latest device location",
                "responses": {"200": {"description": "Latest device state"}}
            }
        },
        "/api/v1/ack": {
            "post": {
                "tags": ["Device"],
                "summary": "Acknowledge the device alarm",
                "responses": {"200": {"description": "Acknowledged"}}
            }
        },
        "/api/v1/sos": {
            "post": {
                "tags": ["Device"],
                "summary": "Manual SOS",
                "responses": {
                    "200": {"description": "SOS recorded"},
                    "400": {"description": "Location required"}
                }
            }
        },
        "/api/v1/escalate": {
            "post": {
                "tags": ["Device"],
                "summary": "Automatic escalation",
                "responses": {
                    "200": {"description": "Escalated"},
                    "400": {"description": "Invalid request"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "SafeBag Backend API",
	Description:      "Backend for the SafeBag wearable safety device.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

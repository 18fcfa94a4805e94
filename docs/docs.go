// Package docs holds the swagger spec served at /swagger. Regenerate with
// `go generate ./cmd/server` after changing handler annotations.
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
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/trades": {
            "get": {
                "tags": ["trades"],
                "summary": "List trades",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["trades"],
                "summary": "Create a trade and optionally claim executions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/trades/{id}/summary": {
            "get": {
                "tags": ["trades"],
                "summary": "Reconciled summary for one trade",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/trades/{id}/pairs": {
            "get": {
                "tags": ["trades"],
                "summary": "Matched open/close pairs for one trade",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/trades/{id}/legs": {
            "get": {
                "tags": ["trades"],
                "summary": "Aggregated display legs for one trade",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/executions": {
            "get": {
                "tags": ["executions"],
                "summary": "List executions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/executions/import": {
            "post": {
                "tags": ["executions"],
                "summary": "Import a batch of broker fills",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/splits": {
            "get": {
                "tags": ["splits"],
                "summary": "List stock splits",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["splits"],
                "summary": "Record or update a stock split",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/analytics/overview": {
            "get": {
                "tags": ["analytics"],
                "summary": "Live portfolio overview recomputed from executions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/analytics/history": {
            "get": {
                "tags": ["analytics"],
                "summary": "Portfolio snapshot history",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Tradelog API",
	Description:      "Execution import, trade reconciliation, and P&L analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

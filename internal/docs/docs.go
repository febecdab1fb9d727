// Package docs holds the OpenAPI description served at /swagger. Regenerate
// it with `swag init -g cmd/api/main.go -o internal/docs` after changing
// handler annotations.
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "User created"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in", "responses": {"200": {"description": "Token and user"}}}},
        "/profile": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get the current user", "responses": {"200": {"description": "User"}}}},
        "/categories": {"get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "Categories"}}}},
        "/subcategories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "List subcategories", "responses": {"200": {"description": "Subcategories"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Create a subcategory", "responses": {"201": {"description": "Subcategory created"}}}
        },
        "/subcategories/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "Delete a subcategory", "responses": {"204": {"description": "Deleted"}}}},
        "/transactions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "List transactions", "responses": {"200": {"description": "Transactions"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Create a transaction", "responses": {"201": {"description": "Transaction or series created"}}}
        },
        "/transactions/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Update a transaction", "responses": {"200": {"description": "Updated transaction"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Delete a transaction", "responses": {"204": {"description": "Deleted"}}}
        },
        "/transactions/group/{groupId}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Delete a series from a date", "responses": {"204": {"description": "Deleted"}}}},
        "/budgets": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Get budgets", "responses": {"200": {"description": "Budgets"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Create a budget", "responses": {"201": {"description": "Budget created"}}}
        },
        "/budgets/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Get budget by ID", "responses": {"200": {"description": "Budget"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Update budget", "responses": {"200": {"description": "Updated budget"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Delete budget", "responses": {"204": {"description": "Deleted"}}}
        },
        "/goals": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "List goals", "responses": {"200": {"description": "Goals"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Create a goal", "responses": {"201": {"description": "Goal created"}}}
        },
        "/goals/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Update a goal", "responses": {"200": {"description": "Updated goal"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Delete a goal", "responses": {"204": {"description": "Deleted"}}}
        },
        "/reports/custom": {"post": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Generate a custom report", "responses": {"200": {"description": "PDF or confirmation message"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Finance Tracker API",
	Description:      "Personal finance tracker: transactions with fixed monthly recurrence, category budgets, savings goals and PDF reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

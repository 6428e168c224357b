// Package docs holds the OpenAPI description served at /swagger.
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
        "/profiles/{username}": {
            "get": {
                "description": "Resolves the route parameter to a user and returns the user with their published projects and approved recommendations.",
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Get an assembled profile",
                "parameters": [
                    {"type": "string", "description": "Public identifier", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Profile ready", "schema": {"$ref": "#/definitions/profile.Page"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/profile.Page"}},
                    "500": {"description": "Failed to load user profile", "schema": {"$ref": "#/definitions/profile.Page"}}
                }
            }
        },
        "/projects/featured": {
            "get": {
                "description": "Lists published, featured projects with their owners, newest first.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List featured projects",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of projects (default 6)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectListSuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/projects": {
            "post": {
                "description": "Creates a project owned by user_id. Status defaults to draft.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a new project",
                "parameters": [
                    {"description": "Project to create", "name": "project", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateProjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Project created successfully", "schema": {"$ref": "#/definitions/handlers.ProjectSuccessResponse"}},
                    "400": {"description": "Bad request if input is invalid", "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}},
                    "500": {"description": "Internal server error if project creation fails", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "description": "Retrieves a project by id, whatever its status.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectSuccessResponse"}},
                    "400": {"description": "Malformed id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Applies a partial update; use it to publish, feature or edit a project.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update a project",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ProjectPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectSuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "description": "Creates a user profile.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "User to create", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.UserSuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserSuccessResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Applies a partial update to the user's profile fields.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update a user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UserPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserSuccessResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/projects": {
            "get": {
                "description": "Lists the user's projects newest first. status is published (default), draft or all.",
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List a user's projects",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "published, draft or all", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProjectListSuccessResponse"}}
                }
            }
        },
        "/users/{id}/recommendations": {
            "get": {
                "description": "Lists recommendations newest first, with the linked project. status is approved (default), pending, rejected or all.",
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "List a user's recommendations",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "approved, pending, rejected or all", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecommendationListSuccessResponse"}}
                }
            }
        },
        "/recommendations": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Leave a recommendation",
                "parameters": [
                    {"description": "Recommendation to create", "name": "recommendation", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateRecommendationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.RecommendationSuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ValidationErrorResponse"}}
                }
            }
        },
        "/recommendations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Get a recommendation",
                "parameters": [
                    {"type": "string", "description": "Recommendation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecommendationSuccessResponse"}},
                    "404": {"description": "Recommendation not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Applies a partial update. Patch status to approve or reject.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Update or moderate a recommendation",
                "parameters": [
                    {"type": "string", "description": "Recommendation ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RecommendationPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecommendationSuccessResponse"}},
                    "404": {"description": "Recommendation not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.CreateUserRequest": {
            "type": "object",
            "required": ["email", "full_name"],
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "title": {"type": "string"},
                "bio": {"type": "string"},
                "location": {"type": "string"},
                "years_experience": {"type": "integer"},
                "linkedin_url": {"type": "string"},
                "portfolio_url": {"type": "string"},
                "avatar_url": {"type": "string"}
            }
        },
        "handlers.CreateProjectRequest": {
            "type": "object",
            "required": ["user_id", "title"],
            "properties": {
                "user_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "problem_statement": {"type": "string"},
                "solution": {"type": "string"},
                "results": {"type": "string"},
                "technologies_used": {"type": "array", "items": {"type": "string"}},
                "company": {"type": "string"},
                "duration_months": {"type": "integer"},
                "project_url": {"type": "string"},
                "image_urls": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["draft", "published"]},
                "featured": {"type": "boolean"}
            }
        },
        "handlers.CreateRecommendationRequest": {
            "type": "object",
            "required": ["user_id", "recommender_name", "recommendation_text"],
            "properties": {
                "user_id": {"type": "string"},
                "project_id": {"type": "string"},
                "recommender_name": {"type": "string"},
                "recommender_title": {"type": "string"},
                "recommender_company": {"type": "string"},
                "recommender_linkedin": {"type": "string"},
                "recommendation_text": {"type": "string"},
                "skills_highlighted": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]}
            }
        },
        "handlers.UserSuccessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/models.User"}
            }
        },
        "handlers.ProjectSuccessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/models.Project"}
            }
        },
        "handlers.ProjectListSuccessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Project"}}
            }
        },
        "handlers.RecommendationSuccessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/models.Recommendation"}
            }
        },
        "handlers.RecommendationListSuccessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Recommendation"}}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "title": {"type": "string"},
                "bio": {"type": "string"},
                "location": {"type": "string"},
                "years_experience": {"type": "integer"},
                "linkedin_url": {"type": "string"},
                "portfolio_url": {"type": "string"},
                "avatar_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Owner": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "title": {"type": "string"},
                "avatar_url": {"type": "string"}
            }
        },
        "models.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "problem_statement": {"type": "string"},
                "solution": {"type": "string"},
                "results": {"type": "string"},
                "technologies_used": {"type": "array", "items": {"type": "string"}},
                "company": {"type": "string"},
                "duration_months": {"type": "integer"},
                "project_url": {"type": "string"},
                "image_urls": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["draft", "published"]},
                "featured": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "users": {"$ref": "#/definitions/models.Owner"}
            }
        },
        "models.ProjectRef": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "models.Recommendation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "project_id": {"type": "string"},
                "recommender_name": {"type": "string"},
                "recommender_title": {"type": "string"},
                "recommender_company": {"type": "string"},
                "recommender_linkedin": {"type": "string"},
                "recommendation_text": {"type": "string"},
                "skills_highlighted": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "projects": {"$ref": "#/definitions/models.ProjectRef"}
            }
        },
        "models.UserPatch": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "title": {"type": "string"},
                "bio": {"type": "string"},
                "location": {"type": "string"},
                "years_experience": {"type": "integer"},
                "linkedin_url": {"type": "string"},
                "portfolio_url": {"type": "string"},
                "avatar_url": {"type": "string"}
            }
        },
        "models.ProjectPatch": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "problem_statement": {"type": "string"},
                "solution": {"type": "string"},
                "results": {"type": "string"},
                "technologies_used": {"type": "array", "items": {"type": "string"}},
                "company": {"type": "string"},
                "duration_months": {"type": "integer"},
                "project_url": {"type": "string"},
                "image_urls": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["draft", "published"]},
                "featured": {"type": "boolean"}
            }
        },
        "models.RecommendationPatch": {
            "type": "object",
            "properties": {
                "project_id": {"type": "string"},
                "recommender_name": {"type": "string"},
                "recommender_title": {"type": "string"},
                "recommender_company": {"type": "string"},
                "recommender_linkedin": {"type": "string"},
                "recommendation_text": {"type": "string"},
                "skills_highlighted": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["pending", "approved", "rejected"]}
            }
        },
        "profile.ViewModel": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/models.User"},
                "projects": {"type": "array", "items": {"$ref": "#/definitions/models.Project"}},
                "recommendations": {"type": "array", "items": {"$ref": "#/definitions/models.Recommendation"}}
            }
        },
        "profile.Page": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["idle", "loading", "ready", "not_found", "error"]},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/profile.ViewModel"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "pmfolio API",
	Description:      "Public profiles, projects and recommendations for product managers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

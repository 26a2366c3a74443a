package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the posts API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>inkpress — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the post CRUD surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "inkpress", "version": "v0.1.0" },
  "paths": {
    "/api/posts": {
      "get": { "summary": "List posts newest-first", "responses": { "200": { "description": "posts returned" } } },
      "post": {
        "summary": "Create a post (multipart form with title, description and optional image, or JSON)",
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"},"image":{"type":"string","format":"binary"}},"required":["title","description"]}}, "application/json": { "schema": {"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"}},"required":["title","description"]}}}},
        "responses": { "200": { "description": "post created" }, "400": { "description": "missing title or description, or slug collision" }, "500": { "description": "store error" } }
      }
    },
    "/api/posts/{slug}": {
      "get": { "summary": "Fetch one post by slug", "parameters": [{"name":"slug","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "post returned" }, "404": { "description": "unknown slug" } } }
    },
    "/api/posts/{id}": {
      "patch": {
        "summary": "Update any subset of title, description and image",
        "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}],
        "responses": { "200": { "description": "post updated" }, "400": { "description": "missing id" }, "500": { "description": "store error" } }
      },
      "delete": {
        "summary": "Delete a post",
        "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}],
        "responses": { "200": { "description": "post deleted" }, "400": { "description": "missing id" }, "500": { "description": "store error, including an already-deleted id" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`

// Package handlers provides the HTTP handler implementations for the public
// API.
//
// This file defines the success envelope shared by every endpoint. Successful
// responses are always {"status":"success","data":...}; error responses are
// never written here. Handlers attach a typed error to the Gin context and
// the terminal error middleware renders {"status":"fail","message":...}, so
// the two envelope shapes have exactly one producer each.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the uniform success envelope.
// It is referenced by the OpenAPI annotations on every endpoint.
type SuccessResponse struct {
	Status string `json:"status" example:"success"`
	Data   any    `json:"data"`
}

// ErrorResponse documents the uniform error envelope rendered by the error
// middleware. Declared here for the OpenAPI annotations only.
type ErrorResponse struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message" example:"card not found"`
}

// ok writes a 200 success envelope.
func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Status: "success", Data: data})
}

// created writes a 201 success envelope.
func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, SuccessResponse{Status: "success", Data: data})
}

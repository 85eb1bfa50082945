package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GTDGit/wilayah_api/internal/models"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OK writes a 200 response with data as the body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response carrying the new row id.
func Created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, models.CreatedResponse{ID: id})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error response and stops the handler chain.
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// GetRequestID returns the id assigned by the logging middleware, or a fresh one.
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return NewRequestID()
}

// NewRequestID returns a short random request id.
func NewRequestID() string {
	return uuid.New().String()[:8]
}

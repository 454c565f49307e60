package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/http/middleware"
)

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

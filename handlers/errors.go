package handlers

import (
	"errors"
	"log"
	"net/http"

	"psytest/scoring"
	"psytest/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case scoring.IsValidation(err), errors.Is(err, services.ErrInvalidDefinition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Test not found"})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, services.ErrTestTypeExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		log.Printf("Request %s failed: %v", c.GetString("request_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

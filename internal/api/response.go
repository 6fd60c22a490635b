package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body. Details carries per-field
// validation messages when present.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondValidation(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: details,
	})
}

func respondNotFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, message)
}

func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

func respondInternal(c *gin.Context, message string) {
	respondError(c, http.StatusInternalServerError, message)
}

// respondProviderFailure surfaces an upstream provider error as a one-shot
// message; the client retries manually, there is no retry here.
func respondProviderFailure(c *gin.Context, err error) {
	respondError(c, http.StatusBadGateway, err.Error())
}

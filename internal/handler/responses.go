package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sportsvitae/backend/internal/mailer"
	"sportsvitae/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Mail is the sender used for registration and password mails. main wires
// the SMTP implementation at startup.
var Mail mailer.Sender

// Init injects the mail sender.
func Init(mail mailer.Sender) {
	Mail = mail
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// respondServiceError maps domain errors onto HTTP statuses: per-field
// validation errors to 400, not-found to 404, forbidden to 403.
func respondServiceError(c *gin.Context, err error) {
	if v, ok := service.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": v.Fields})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if errors.Is(err, service.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}

func pathID(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(raw), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(raw), true
}

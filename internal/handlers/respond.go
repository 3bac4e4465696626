package handlers

import (
	"errors"
	"log"
	"net/http"

	dom "github.com/zayndotdev/real-estate/internal/domain"
	"github.com/zayndotdev/real-estate/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError is the single boundary translator from typed flow errors to
// HTTP responses. Anything unrecognized is logged and surfaced as a generic
// 500 so store/driver details never reach the caller.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrMissingEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNotOwner):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, dom.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		log.Printf("internal error: %v", err)
	}

	c.JSON(status, gin.H{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}

func respondBadBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":    false,
		"statusCode": http.StatusBadRequest,
		"message":    "invalid request body",
	})
}

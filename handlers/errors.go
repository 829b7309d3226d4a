package handlers

import (
	"errors"
	"net/http"

	"localbooker/services/booking"

	"github.com/gin-gonic/gin"
)

// respondBookingError maps booking engine errors onto HTTP responses. The
// conflicting interval rides along on slot conflicts so the client can offer
// an alternative.
func respondBookingError(c *gin.Context, err error) {
	var (
		validation *booking.ValidationError
		slot       *booking.SlotUnavailable
		transition *booking.InvalidStateTransition
		forbidden  *booking.Forbidden
		notFound   *booking.NotFound
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.As(err, &slot):
		c.JSON(http.StatusConflict, gin.H{
			"error":    err.Error(),
			"conflict": slot.Conflict,
		})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// requestUserID retrieves the authenticated user id set by the auth middleware.
func requestUserID(c *gin.Context) (string, bool) {
	raw, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	id, ok := raw.(string)
	return id, ok && id != ""
}

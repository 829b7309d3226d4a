package handlers

import (
	"net/http"
	"strconv"

	bookingRepo "localbooker/database/repository/booking"
	"localbooker/models"
	"localbooker/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves user-facing booking endpoints; the admin variants
// live on AdminHandler.
type BookingHandler struct {
	Engine   *booking.Engine
	Bookings bookingRepo.Repository
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Engine.CreateBooking(c.Request.Context(), userID, input)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// MyBookingsHandler handles GET /bookings.
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	bookings, err := h.Bookings.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBookingHandler handles POST /bookings/cancel/:id.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	isAdmin := c.GetBool("isAdmin")
	b, err := h.Engine.CancelBooking(c.Request.Context(), c.Param("id"), userID, isAdmin)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

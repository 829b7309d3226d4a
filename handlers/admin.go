// File: localbooker/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"localbooker/models"
	"localbooker/services/admin"
	"localbooker/services/booking"
	"localbooker/services/feedback"
	"localbooker/services/user"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin console endpoints.
type AdminHandler struct {
	AdminService    admin.AdminService
	Engine          *booking.Engine
	UserService     user.UserService
	FeedbackService feedback.FeedbackService
}

// DashboardHandler handles GET /admin/dashboard.
func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	stats, err := h.AdminService.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListBookingsHandler handles GET /admin/bookings.
func (h *AdminHandler) ListBookingsHandler(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)
	bookings, total, err := h.AdminService.ListBookings(
		c.Request.Context(),
		c.Query("status"),
		c.Query("search"),
		page, limit,
		c.DefaultQuery("sort", "newest"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// ManualBookingHandler handles POST /admin/bookings: an admin books on a
// user's behalf with a chosen initial status.
func (h *AdminHandler) ManualBookingHandler(c *gin.Context) {
	var input struct {
		models.BookingInput
		UserID string `json:"userId"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Engine.ManualBooking(c.Request.Context(), input.UserID, input.BookingInput, input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBookingStatusHandler handles PUT /admin/bookings/status/:id.
func (h *AdminHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Engine.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RescheduleBookingHandler handles PUT /admin/bookings/reschedule/:id. The new
// dates go through the same conflict check as a fresh booking, with the
// booking's own slot excluded.
func (h *AdminHandler) RescheduleBookingHandler(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	b, err := h.Engine.Reschedule(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// BulkUpdateBookingStatusHandler handles PUT /admin/bookings/bulk-status.
func (h *AdminHandler) BulkUpdateBookingStatusHandler(c *gin.Context) {
	var input struct {
		IDs    []string `json:"ids"`
		Status string   `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	updated, skipped, err := h.Engine.BulkUpdateStatus(c.Request.Context(), input.IDs, input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updatedCount": updated, "skippedCount": skipped})
}

// DeleteBookingHandler handles DELETE /admin/bookings/delete/:id.
func (h *AdminHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.AdminService.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// DeleteBookingsHandler handles POST /admin/bookings/delete.
func (h *AdminHandler) DeleteBookingsHandler(c *gin.Context) {
	var input struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	n, err := h.AdminService.DeleteBookings(c.Request.Context(), input.IDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": n})
}

// ListUsersHandler handles GET /admin/users.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetUserStatusHandler handles PUT /admin/users/status/:id.
func (h *AdminHandler) SetUserStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	usr, err := h.UserService.SetStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// SetUserRoleHandler handles PUT /admin/users/role/:id.
func (h *AdminHandler) SetUserRoleHandler(c *gin.Context) {
	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	usr, err := h.UserService.SetRole(c.Request.Context(), c.Param("id"), input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /admin/users/delete/:id.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.UserService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetSettingsHandler handles GET /admin/settings.
func (h *AdminHandler) GetSettingsHandler(c *gin.Context) {
	s, err := h.AdminService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateSettingsHandler handles PUT /admin/settings.
func (h *AdminHandler) UpdateSettingsHandler(c *gin.Context) {
	var input models.Settings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	s, err := h.AdminService.UpdateSettings(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListFeedbackHandler handles GET /admin/feedback.
func (h *AdminHandler) ListFeedbackHandler(c *gin.Context) {
	out, err := h.FeedbackService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ReplyFeedbackHandler handles POST /admin/feedback/reply/:id.
func (h *AdminHandler) ReplyFeedbackHandler(c *gin.Context) {
	adminID, _ := requestUserID(c)
	var input struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	f, err := h.FeedbackService.Reply(c.Request.Context(), c.Param("id"), adminID, input.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, f)
}

// RunSweepHandler handles POST /admin/sweep: a manual availability
// reconciliation, same routine the scheduler runs.
func (h *AdminHandler) RunSweepHandler(c *gin.Context) {
	n, err := h.Engine.RunSweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciled": n})
}

package handlers

import (
	"io"
	"net/http"

	"localbooker/models"
	"localbooker/services/payment"
	"localbooker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves checkout and the Stripe webhook.
type PaymentHandler struct {
	Payments payment.PaymentService
}

// CheckoutHandler handles POST /bookings/checkout: it opens a payment intent
// for the requested slot. The booking is recorded by the webhook once the
// payment succeeds.
func (h *PaymentHandler) CheckoutHandler(c *gin.Context) {
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
	resp, err := h.Payments.CreateCheckout(c.Request.Context(), userID, input)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// WebhookHandler handles POST /payments/webhook. Stripe signs the raw body,
// so it is read verbatim before any decoding.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	signature := c.GetHeader("Stripe-Signature")
	if err := h.Payments.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		utils.GetLogger().Error("stripe webhook failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

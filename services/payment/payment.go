package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"localbooker/config"
	serviceRepo "localbooker/database/repository/service"
	"localbooker/models"
	"localbooker/services/booking"
	"localbooker/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// CheckoutResponse is returned to the client to drive the Stripe payment
// sheet. The booking itself is only recorded once the payment succeeds.
type CheckoutResponse struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
}

// PaymentService creates payment intents for bookings and turns successful
// payments into confirmed bookings.
type PaymentService interface {
	CreateCheckout(ctx context.Context, userID string, in models.BookingInput) (*CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Services serviceRepo.Repository
	Engine   *booking.Engine
}

// CreateCheckout prices the requested interval and opens a payment intent
// carrying the booking details as metadata. The slot is checked here only to
// fail fast; the authoritative conflict check happens again when the webhook
// confirms the booking.
func (s *DefaultPaymentService) CreateCheckout(ctx context.Context, userID string, in models.BookingInput) (*CheckoutResponse, error) {
	svc, err := s.Services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil {
		return nil, &booking.NotFound{Kind: "service", ID: in.ServiceID}
	}
	iv, err := booking.NormalizeInterval(in)
	if err != nil {
		return nil, err
	}
	if conflict, err := s.Engine.Bookings.FindConflict(ctx, in.ServiceID, iv, ""); err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	} else if conflict != nil {
		return nil, &booking.SlotUnavailable{
			ServiceID: in.ServiceID,
			Conflict:  models.Interval{Start: conflict.CheckIn, End: conflict.CheckOut},
		}
	}

	amount := booking.PriceFor(svc, iv)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("service_id", in.ServiceID)
	params.AddMetadata("check_in", iv.Start.Format(time.RFC3339Nano))
	params.AddMetadata("check_out", iv.End.Format(time.RFC3339Nano))
	if in.TimeSlot != "" {
		params.AddMetadata("time_slot", in.TimeSlot)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &CheckoutResponse{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		Amount:          amount,
	}, nil
}

// HandleWebhook verifies a Stripe event signature and, for a succeeded
// payment, records the booking it paid for. Events the service does not care
// about are acknowledged silently.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}
	switch event.Type {
	case "payment_intent.succeeded":
	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fmt.Errorf("failed to decode payment intent: %w", err)
		}
		// No booking exists yet for a failed intent; the slot was never held.
		utils.GetLogger().Warn("payment failed, no booking recorded",
			zap.String("paymentIntentID", pi.ID),
			zap.String("serviceID", pi.Metadata["service_id"]))
		return nil
	default:
		return nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("failed to decode payment intent: %w", err)
	}
	in, userID, err := bookingInputFromMetadata(pi.Metadata)
	if err != nil {
		return fmt.Errorf("payment intent %s: %w", pi.ID, err)
	}

	amount := float64(pi.Amount) / 100
	b, err := s.Engine.ConfirmAfterPayment(ctx, userID, in, amount, pi.ID)
	if err != nil {
		return fmt.Errorf("failed to confirm paid booking: %w", err)
	}
	utils.GetLogger().Info("paid booking confirmed",
		zap.String("bookingID", b.ID), zap.String("paymentIntentID", pi.ID))
	return nil
}

func bookingInputFromMetadata(md map[string]string) (models.BookingInput, string, error) {
	userID := md["user_id"]
	serviceID := md["service_id"]
	if userID == "" || serviceID == "" {
		return models.BookingInput{}, "", fmt.Errorf("metadata missing user_id or service_id")
	}
	checkIn, err := time.Parse(time.RFC3339Nano, md["check_in"])
	if err != nil {
		return models.BookingInput{}, "", fmt.Errorf("bad check_in metadata: %w", err)
	}
	checkOut, err := time.Parse(time.RFC3339Nano, md["check_out"])
	if err != nil {
		return models.BookingInput{}, "", fmt.Errorf("bad check_out metadata: %w", err)
	}
	return models.BookingInput{
		ServiceID: serviceID,
		CheckIn:   &checkIn,
		CheckOut:  &checkOut,
		TimeSlot:  md["time_slot"],
	}, userID, nil
}

package models

import "time"

// Booking statuses. "approved" and "confirmed" name the same lifecycle stage;
// both spellings appear in stored records and are accepted on input.
const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Booking represents a reservation of one service by one user over a time
// interval. CheckIn/CheckOut always hold the normalized half-open interval;
// Date and TimeSlot preserve the original single-date input when present.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	ServiceID       string     `bson:"service_id" json:"serviceId"`
	UserID          string     `bson:"user_id" json:"userId"`
	CheckIn         time.Time  `bson:"check_in" json:"checkIn"`
	CheckOut        time.Time  `bson:"check_out" json:"checkOut"`
	Date            *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	TimeSlot        string     `bson:"time_slot,omitempty" json:"timeSlot,omitempty"`
	Status          string     `bson:"status" json:"status"`
	Price           float64    `bson:"price" json:"price"`
	PaymentStatus   string     `bson:"payment_status" json:"paymentStatus"`
	PaymentIntentID string     `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	PaidAt          *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}

// BookingInput is the booking request payload: either CheckIn/CheckOut or
// Date (+ optional TimeSlot) must be provided.
type BookingInput struct {
	ServiceID string     `json:"serviceId"`
	CheckIn   *time.Time `json:"checkIn,omitempty"`
	CheckOut  *time.Time `json:"checkOut,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	TimeSlot  string     `json:"timeSlot,omitempty"`
}

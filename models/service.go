package models

import "time"

// Service is a bookable offering. IsAvailable and BookedUntil are a derived
// projection of the booking ledger; they are recomputed by the booking engine
// and the availability sweep, never written by catalog CRUD.
type Service struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Price       float64    `bson:"price" json:"price"`
	Description string     `bson:"description" json:"description"`
	IsAvailable bool       `bson:"is_available" json:"isAvailable"`
	BookedUntil *time.Time `bson:"booked_until,omitempty" json:"bookedUntil,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}

// ServiceListing is a catalog entry enriched with live booking state.
type ServiceListing struct {
	Service              `bson:",inline"`
	CurrentBookingStatus string `json:"currentBookingStatus,omitempty"`
}

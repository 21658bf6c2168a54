package models

import "time"

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// BookingRequest carries everything needed to reserve tables for one slot.
type BookingRequest struct {
	Date            string       `json:"date"`
	Time            string       `json:"time"`
	Guests          int          `json:"guests"`
	Customer        CustomerInfo `json:"customer"`
	SpecialRequests string       `json:"specialRequests,omitempty"`
}

// TableBooking is a persisted table reservation.
type TableBooking struct {
	ID              string       `bson:"id" json:"id"`
	Customer        CustomerInfo `bson:"customer" json:"customer"`
	Date            string       `bson:"date" json:"date"`
	Time            string       `bson:"time" json:"time"`
	Guests          int          `bson:"guests" json:"guests"`
	Tables          int          `bson:"tables" json:"tables"`
	SpecialRequests string       `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	Status          string       `bson:"status" json:"status"`
	CreatedAt       time.Time    `bson:"createdAt" json:"createdAt"`
}

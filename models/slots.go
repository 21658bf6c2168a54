package models

import "time"

// AvailabilitySlot is the number of free tables for one (date, time) pair.
type AvailabilitySlot struct {
	ID        string    `bson:"id" json:"id"`
	Date      string    `bson:"date" json:"date"`         // e.g. "2025-02-25"
	Time      string    `bson:"time" json:"time"`         // display form, e.g. "7:00 PM"
	Minute    int       `bson:"minute" json:"minute"`     // minutes from midnight, used for ordering
	Available int       `bson:"available" json:"available"`
	Version   int       `bson:"version" json:"version"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AvailableDate is a date inside the booking window with at least one free table.
type AvailableDate struct {
	Date    string `json:"date"`
	Display string `json:"display"`
}

// AvailableTime is a bookable time on a given date.
type AvailableTime struct {
	Time      string `json:"time"`
	Available int    `json:"available"`
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	timeslotRepo "greengarden/database/repository/timeslot"
	"greengarden/models"

	"github.com/google/uuid"
)

// ReserveTable re-checks availability, takes the tables and stores the booking.
// The tables are handed back if the booking cannot be stored.
func (s *DefaultBookingService) ReserveTable(ctx context.Context, req models.BookingRequest) (*models.TableBooking, error) {
	switch {
	case req.Date == "":
		return nil, newValidationError("date", "a date is required")
	case req.Time == "":
		return nil, newValidationError("time", "a time is required")
	case req.Guests <= 0:
		return nil, newValidationError("guests", "the party must have at least one guest")
	}

	tables := TablesFor(req.Guests, s.SeatsPerTable)
	if _, err := s.Slots.TryReserveTables(ctx, req.Date, req.Time, tables); err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotNotFound) {
			return nil, ErrNoAvailability
		}
		return nil, fmt.Errorf("reserve tables: %w", err)
	}

	booking := &models.TableBooking{
		ID:              uuid.New().String(),
		Customer:        req.Customer,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.Guests,
		Tables:          tables,
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingStatusConfirmed,
		CreatedAt:       s.now(),
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		rollbackCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if rbErr := s.Slots.RollbackReservedTables(rollbackCtx, req.Date, req.Time, tables); rbErr != nil {
			log.Printf("[ReserveTable] rollback failed for %s %s: %v", req.Date, req.Time, rbErr)
		}
		return nil, fmt.Errorf("store booking: %w", err)
	}
	return booking, nil
}

// ListBookings returns every booking, newest first.
func (s *DefaultBookingService) ListBookings(ctx context.Context) ([]models.TableBooking, error) {
	return s.Bookings.GetAll(ctx)
}

package booking

import (
	"context"
	"time"

	bookingsRepo "greengarden/database/repository/bookings"
	timeslotRepo "greengarden/database/repository/timeslot"
	"greengarden/models"
)

// BookingService answers availability questions and reserves tables.
type BookingService interface {
	GetAvailableDates(ctx context.Context, daysAhead int) ([]models.AvailableDate, error)
	GetAvailableTimes(ctx context.Context, date string) ([]models.AvailableTime, error)
	LastBookableDate(ctx context.Context) (string, error)
	IsTableAvailable(ctx context.Context, date, time string, guests int) (bool, error)
	ReserveTable(ctx context.Context, req models.BookingRequest) (*models.TableBooking, error)
	ListBookings(ctx context.Context) ([]models.TableBooking, error)
}

// DefaultBookingService implements BookingService on top of the availability and
// booking repositories.
type DefaultBookingService struct {
	Slots         timeslotRepo.TimeSlotRepository
	Bookings      bookingsRepo.BookingRepository
	SeatsPerTable int
	Now           func() time.Time
}

// NewBookingService wires a DefaultBookingService.
func NewBookingService(slots timeslotRepo.TimeSlotRepository, bookings bookingsRepo.BookingRepository, seatsPerTable int) *DefaultBookingService {
	if seatsPerTable <= 0 {
		seatsPerTable = DefaultSeatsPerTable
	}
	return &DefaultBookingService{
		Slots:         slots,
		Bookings:      bookings,
		SeatsPerTable: seatsPerTable,
		Now:           time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

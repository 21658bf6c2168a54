package dialogue

import (
	"context"

	"greengarden/models"
)

// ItemMatcher resolves free text to catalog items.
type ItemMatcher interface {
	IdentifyItems(text string) []models.OrderItem
	Suggest(keywords []string, max int) []models.MenuItem
	Catalog() []models.MenuItem
}

// Availability answers which dates and times still have free tables.
type Availability interface {
	GetAvailableDates(ctx context.Context, daysAhead int) ([]models.AvailableDate, error)
	GetAvailableTimes(ctx context.Context, date string) ([]models.AvailableTime, error)
	IsTableAvailable(ctx context.Context, date, time string, guests int) (bool, error)
}

// Reservations books a table. Implementations must re-check availability and take
// the tables atomically with storing the booking.
type Reservations interface {
	ReserveTable(ctx context.Context, req models.BookingRequest) (*models.TableBooking, error)
}

// Orders places food orders and reports on them.
type Orders interface {
	PlaceOrder(ctx context.Context, customer models.CustomerInfo, items []models.OrderItem) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
}

// TurnRecorder appends one exchange to the conversation audit log.
type TurnRecorder interface {
	RecordTurn(ctx context.Context, sessionID, userText, botText string) error
}

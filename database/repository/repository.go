package repository

import (
	bookingsRepo "greengarden/database/repository/bookings"
	menuRepo "greengarden/database/repository/menu"
	ordersRepo "greengarden/database/repository/orders"
	recordsRepo "greengarden/database/repository/records"
	timeslotRepo "greengarden/database/repository/timeslot"
)

// Re-export the repository interfaces.
type (
	MenuRepository               = menuRepo.MenuRepository
	TimeSlotRepository           = timeslotRepo.TimeSlotRepository
	BookingRepository            = bookingsRepo.BookingRepository
	OrderRepository              = ordersRepo.OrderRepository
	ConversationRecordRepository = recordsRepo.ConversationRecordRepository
)

// Repositories bundles every MongoDB-backed store the service uses.
type Repositories struct {
	Menu     MenuRepository
	Slots    TimeSlotRepository
	Bookings BookingRepository
	Orders   OrderRepository
	Records  ConversationRecordRepository
}

// NewMongoRepositories builds all repositories on the database opened by database.InitDB.
func NewMongoRepositories() *Repositories {
	return &Repositories{
		Menu:     menuRepo.NewMongoMenuRepo(),
		Slots:    timeslotRepo.NewMongoTimeSlotRepo(),
		Bookings: bookingsRepo.NewMongoBookingRepo(),
		Orders:   ordersRepo.NewMongoOrderRepo(),
		Records:  recordsRepo.NewMongoRecordRepo(),
	}
}

// EnsureIndexes creates the indexes of every collection, returning the failures by collection.
func (r *Repositories) EnsureIndexes() map[string]error {
	failed := map[string]error{}
	for name, repo := range map[string]interface{ EnsureIndexes() error }{
		"menu_items":         r.Menu,
		"table_availability": r.Slots,
		"table_bookings":     r.Bookings,
		"orders":             r.Orders,
		"conversations":      r.Records,
	} {
		if err := repo.EnsureIndexes(); err != nil {
			failed[name] = err
		}
	}
	return failed
}

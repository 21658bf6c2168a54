// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"

	"greengarden/database"
	"greengarden/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TimeSlotRepository stores table availability per (date, time).
type TimeSlotRepository interface {
	CreateMany(ctx context.Context, slots []models.AvailabilitySlot) ([]string, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	GetAvailableByDate(ctx context.Context, date string) ([]models.AvailabilitySlot, error)
	GetByDateAndTime(ctx context.Context, date, time string) (*models.AvailabilitySlot, error)
	GetDatesWithAvailability(ctx context.Context, dates []string) ([]string, error)
	GetMaxAvailableDate(ctx context.Context, from string) (string, error)
	TryReserveTables(ctx context.Context, date, time string, tables int) (*models.AvailabilitySlot, error)
	RollbackReservedTables(ctx context.Context, date, time string, tables int) error
	EnsureIndexes() error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: database.DB().Collection("table_availability"),
	}
}

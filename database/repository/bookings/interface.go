// File: database/repository/bookings/interface.go
package bookingsRepo

import (
	"context"

	"greengarden/database"
	"greengarden/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists table reservations.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.TableBooking) error
	GetByID(ctx context.Context, id string) (*models.TableBooking, error)
	GetAll(ctx context.Context) ([]models.TableBooking, error)
	GetByDate(ctx context.Context, date string) ([]models.TableBooking, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("table_bookings"),
	}
}

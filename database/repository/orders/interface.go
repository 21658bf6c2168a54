package ordersRepo

import (
	"context"

	"greengarden/database"
	"greengarden/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// OrderRepository persists food orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	EnsureIndexes() error
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo returns an OrderRepository backed by MongoDB.
func NewMongoOrderRepo() OrderRepository {
	return &mongoOrderRepo{
		coll: database.DB().Collection("orders"),
	}
}

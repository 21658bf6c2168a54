package menuRepo

import (
	"context"

	"greengarden/database"
	"greengarden/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MenuRepository reads and seeds the catalog.
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	CreateMany(ctx context.Context, items []models.MenuItem) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	EnsureIndexes() error
}

type mongoMenuRepo struct {
	coll *mongo.Collection
}

// NewMongoMenuRepo returns a MenuRepository backed by MongoDB.
func NewMongoMenuRepo() MenuRepository {
	return &mongoMenuRepo{
		coll: database.DB().Collection("menu_items"),
	}
}

package recordsRepo

import (
	"context"

	"greengarden/database"
	"greengarden/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ConversationRecordRepository stores the audit trail of chat turns.
type ConversationRecordRepository interface {
	Create(ctx context.Context, record models.ConversationRecord) (string, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]models.ConversationRecord, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
	EnsureIndexes() error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new ConversationRecordRepository instance using MongoDB.
func NewMongoRecordRepo() ConversationRecordRepository {
	return &mongoRecordRepo{
		coll: database.DB().Collection("conversations"),
	}
}

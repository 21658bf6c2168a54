// File: database/repository/timeslot/queries.go
package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greengarden/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlotNotFound is returned when no availability exists for a date and time.
var ErrSlotNotFound = errors.New("slot not found")

func (repo *mongoTimeSlotRepo) GetAvailableByDate(ctx context.Context, date string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":      date,
		"available": bson.M{"$gt": 0},
	}
	opts := options.Find().SetSort(bson.D{{Key: "minute", Value: 1}})

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding availability: %w", err)
	}
	return slots, nil
}

func (repo *mongoTimeSlotRepo) GetByDateAndTime(ctx context.Context, date, slotTime string) (*models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.AvailabilitySlot
	err := repo.coll.FindOne(ctx, bson.M{"date": date, "time": slotTime}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &slot, nil
}

// GetDatesWithAvailability returns the subset of dates that still have a free table.
func (repo *mongoTimeSlotRepo) GetDatesWithAvailability(ctx context.Context, dates []string) ([]string, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"date":      bson.M{"$in": dates},
			"available": bson.M{"$gt": 0},
		}}},
		{{Key: "$group", Value: bson.M{"_id": "$date"}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate available dates: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Date string `bson:"_id"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}

	out := make([]string, 0, len(result))
	for _, r := range result {
		out = append(out, r.Date)
	}
	return out, nil
}

// GetMaxAvailableDate returns the latest date on or after from that still has a free
// table, or "" when there is none.
func (repo *mongoTimeSlotRepo) GetMaxAvailableDate(ctx context.Context, from string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"date":      bson.M{"$gte": from},
			"available": bson.M{"$gt": 0},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"maxDate": bson.M{"$max": "$date"},
		}}},
	}

	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate max date: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		MaxDate string `bson:"maxDate"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}

	if len(result) == 0 {
		return "", nil
	}
	return result[0].MaxDate, nil
}

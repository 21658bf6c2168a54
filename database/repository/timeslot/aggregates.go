package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"greengarden/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TryReserveTables decrements availability only when enough tables remain. The
// check and the decrement are one conditional update, so concurrent reservations
// cannot oversell a slot. It returns ErrSlotNotFound when nothing matched.
func (repo *mongoTimeSlotRepo) TryReserveTables(ctx context.Context, date, slotTime string, tables int) (*models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":      date,
		"time":      slotTime,
		"available": bson.M{"$gte": tables},
	}
	update := bson.M{
		"$inc": bson.M{
			"available": -tables,
			"version":   1,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.AvailabilitySlot
	if err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot); err != nil {
		if isNoDocuments(err) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to reserve tables: %w", err)
	}
	return &slot, nil
}

// RollbackReservedTables gives tables back after a failed booking insert.
func (repo *mongoTimeSlotRepo) RollbackReservedTables(ctx context.Context, date, slotTime string, tables int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time": slotTime}
	update := bson.M{
		"$inc": bson.M{"available": tables, "version": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to rollback reserved tables: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("rollback update failed; slot %s %s not found", date, slotTime)
	}
	return nil
}

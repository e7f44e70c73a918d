package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoMachineRepository struct {
	collection *mongo.Collection
}

func NewMongoMachineRepository(db *mongo.Database) MachineRepository {
	return &mongoMachineRepository{
		collection: db.Collection("vending_machines"),
	}
}

func (m *mongoMachineRepository) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	var machine domain.Machine

	filter := bson.M{"_id": id}
	err := m.collection.FindOne(ctx, filter).Decode(&machine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMachineNotFound
		}
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}

	return &machine, nil
}

// ReplaceStock swaps the whole ledger in one conditional write. The version
// in the filter is what makes concurrent read-modify-write cycles safe: the
// second writer matches nothing and gets ErrVersionConflict.
func (m *mongoMachineRepository) ReplaceStock(ctx context.Context, id string, version int64, stock []domain.StockItem) error {
	filter := bson.M{"_id": id, "version": version}
	update := bson.M{
		"$set": bson.M{"stock": stock},
		"$inc": bson.M{"version": 1},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace stock: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}

	return nil
}

// InsertMachine seeds a machine document. Used by provisioning and tests.
func (m *mongoMachineRepository) InsertMachine(ctx context.Context, machine *domain.Machine) error {
	_, err := m.collection.InsertOne(ctx, machine)
	if err != nil {
		return fmt.Errorf("failed to insert machine: %w", err)
	}
	return nil
}

package repository

import (
	"context"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBaggageJournalRepository implements BaggageJournalRepository
type MongoBaggageJournalRepository struct {
	collection *mongo.Collection
}

// NewMongoBaggageJournalRepository creates a new baggage journal repository
func NewMongoBaggageJournalRepository(ctx context.Context, db *mongo.Database) (repository.BaggageJournalRepository, error) {
	collection := db.Collection("baggage_events")

	// Lookups are by flight, newest first
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "flightNumber", Value: 1},
				{Key: "recordedAt", Value: -1},
			},
		},
		{
			Keys: bson.M{"observer": 1},
		},
	})
	if err != nil {
		return nil, err
	}

	return &MongoBaggageJournalRepository{
		collection: collection,
	}, nil
}

// Append inserts one event
func (r *MongoBaggageJournalRepository) Append(ctx context.Context, event *entity.BaggageEvent) error {
	if event.ID == "" {
		event.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// FindByFlightNumber returns the latest events for a flight, newest first
func (r *MongoBaggageJournalRepository) FindByFlightNumber(ctx context.Context, flightNo int, limit int) ([]*entity.BaggageEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"flightNumber": flightNo}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*entity.BaggageEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/persistence/db"
)

const gameEventRetention = 90 * 24 * time.Hour

type gameEventRepository struct {
	db *mongo.Database
}

func NewGameEventRepository(db *mongo.Database) domain.GameEventRepository {
	return &gameEventRepository{
		db: db,
	}
}

func (r *gameEventRepository) GetByEventType(ctx context.Context, eventType domain.GameEventType, from time.Time, to time.Time) ([]domain.GameEvent, error) {
	collection := r.db.Collection(db.GameEventsCollection)

	filter := bson.M{
		"event_type": eventType,
		"timestamp": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []domain.GameEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *gameEventRepository) GetByRoomCode(ctx context.Context, code string, limit int) ([]domain.GameEvent, error) {
	collection := r.db.Collection(db.GameEventsCollection)

	filter := bson.M{"room_code": code}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []domain.GameEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

// Log is idempotent on the event id, so a redelivered message is not an error.
func (r *gameEventRepository) Log(ctx context.Context, event *domain.GameEvent) error {
	collection := r.db.Collection(db.GameEventsCollection)

	_, err := collection.InsertOne(ctx, event)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *gameEventRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.GameEventsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room_code", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(gameEventRetention.Seconds())),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/persistence/db"
)

type HintRepository interface {
	domain.HintStore
	domain.HintLister
	EnsureIndexes(ctx context.Context) error
}

type hintRepository struct {
	db *mongo.Database
}

// NewHintRepository keeps every hint increment in the hints collection.
func NewHintRepository(db *mongo.Database) HintRepository {
	return &hintRepository{
		db: db,
	}
}

func (r *hintRepository) RecordHint(ctx context.Context, secretName, hintText string) error {
	if secretName == "" {
		return domain.ErrInvalidInput
	}

	collection := r.db.Collection(db.HintsCollection)

	_, err := collection.InsertOne(ctx, domain.HintRecord{
		ID:         uuid.NewString(),
		SecretName: secretName,
		HintText:   hintText,
		CreatedAt:  time.Now(),
	})
	return err
}

// ListHints returns the hints for a secret oldest first.
func (r *hintRepository) ListHints(ctx context.Context, secretName string) ([]domain.HintRecord, error) {
	if secretName == "" {
		return nil, domain.ErrInvalidInput
	}

	collection := r.db.Collection(db.HintsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"secret_name": secretName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.HintRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *hintRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.HintsCollection)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "secret_name", Value: 1},
			{Key: "created_at", Value: 1},
		},
	})
	return err
}

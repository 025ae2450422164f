package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/persistence/db"
)

type cardRepository struct {
	db *mongo.Database
}

func NewCardRepository(db *mongo.Database) domain.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// FindByPack returns an empty slice for a pack with no cards.
func (r *cardRepository) FindByPack(ctx context.Context, pack string) ([]domain.PackCard, error) {
	if pack == "" {
		return nil, domain.ErrInvalidInput
	}

	collection := r.db.Collection(db.PokemonCardsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"pack": pack}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cards := []domain.PackCard{}
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, err
	}

	return cards, nil
}

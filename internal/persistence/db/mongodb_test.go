package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoConfig_Check(t *testing.T) {
	var missing *MongoConfig
	assert.ErrorIs(t, missing.check(), ErrInvalidConfig)
	assert.ErrorIs(t, (&MongoConfig{Database: "game"}).check(), ErrInvalidConfig)
	assert.ErrorIs(t, (&MongoConfig{URI: "mongodb://localhost:27017"}).check(), ErrInvalidConfig)
	assert.NoError(t, NewMongoDefaultConfig().check())
}

func TestMongoConfig_ClientOptionsFallBackToDefaults(t *testing.T) {
	opts := (&MongoConfig{URI: "mongodb://localhost:27017", Database: "game"}).clientOptions()

	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(DefaultMaxPoolSize), *opts.MaxPoolSize)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, DefaultConnectionTimeout, *opts.ConnectTimeout)
	assert.Nil(t, opts.AppName)
}

func TestNewMongoClient_RejectsBadConfig(t *testing.T) {
	_, err := NewMongoClient(context.Background(), &MongoConfig{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGetDatabase_NilSafe(t *testing.T) {
	assert.Nil(t, GetDatabase(nil, NewMongoDefaultConfig()))
	assert.NoError(t, DisconnectMongo(context.Background(), nil))
}

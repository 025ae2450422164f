package domain

import (
	"context"
	"errors"
	"time"
)

var ErrSecretUnavailable = errors.New("secret unavailable")

// SecretProvider hands out a random entity for a round. Implementations may
// be slow and may fail; callers must not hold a room lock while calling.
type SecretProvider interface {
	FetchRandomSecret(ctx context.Context) (Secret, error)
}

// HintStore records every hint increment. Writes are best-effort.
type HintStore interface {
	RecordHint(ctx context.Context, secretName, hintText string) error
}

type HintRecord struct {
	ID         string    `json:"id" bson:"_id"`
	SecretName string    `json:"secretName" bson:"secret_name"`
	HintText   string    `json:"hintText" bson:"hint_text"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// HintLister is implemented by stores that can read back what they kept.
type HintLister interface {
	ListHints(ctx context.Context, secretName string) ([]HintRecord, error)
}

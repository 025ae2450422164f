package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hanwool95/game-socket-server/internal/domain"
)

// Oldest hints are evicted when a secret exceeds capacity.
type hintRepository struct {
	hints    map[string][]domain.HintRecord // secretName -> []HintRecord
	capacity uint
	mu       *sync.RWMutex
}

type HintRepository interface {
	domain.HintStore
	domain.HintLister
}

func NewHintRepository(capacity uint) HintRepository {
	if capacity == 0 {
		capacity = 100
	}
	return &hintRepository{
		capacity: capacity,
		hints:    make(map[string][]domain.HintRecord),
		mu:       &sync.RWMutex{},
	}
}

func (r *hintRepository) RecordHint(ctx context.Context, secretName, hintText string) error {
	if secretName == "" {
		return domain.ErrInvalidInput
	}

	record := domain.HintRecord{
		ID:         uuid.NewString(),
		SecretName: secretName,
		HintText:   hintText,
		CreatedAt:  time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, exists := r.hints[secretName]
	if !exists {
		records = make([]domain.HintRecord, 0, r.capacity)
	}

	records = append(records, record)

	if len(records) > int(r.capacity) {
		excess := len(records) - int(r.capacity)
		records = records[excess:]
	}

	r.hints[secretName] = records

	return nil
}

func (r *hintRepository) ListHints(ctx context.Context, secretName string) ([]domain.HintRecord, error) {
	if secretName == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records, exists := r.hints[secretName]
	if !exists || len(records) == 0 {
		return []domain.HintRecord{}, nil
	}

	cpy := make([]domain.HintRecord, len(records))
	copy(cpy, records)

	return cpy, nil
}

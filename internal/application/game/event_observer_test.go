package game_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanwool95/game-socket-server/internal/application/game"
	"github.com/hanwool95/game-socket-server/internal/domain"
)

type recordingSink struct {
	mu     sync.Mutex
	events []*domain.GameEvent
}

func (s *recordingSink) Emit(event *domain.GameEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) types() []domain.GameEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.GameEventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.EventType)
	}
	return out
}

func TestEventObserver_RoomLifecycle(t *testing.T) {
	sink := &recordingSink{}
	f := newFixture(t, withObservers(game.NewEventObserver(sink)))
	ctx := context.Background()

	code := f.lobby(t, "a", "b")
	require.NoError(t, f.coord.StartGame(ctx, "a", code, 30))
	f.coord.Disconnect(ctx, "a")
	f.coord.Disconnect(ctx, "b")

	assert.Equal(t, []domain.GameEventType{
		domain.EventRoomCreated,
		domain.EventPlayerJoined,
		domain.EventGameStarted,
		domain.EventRoundStarted,
		domain.EventPlayerLeft,
		domain.EventHostChanged,
		domain.EventRoundEnded,
		domain.EventRoundStarted,
		domain.EventPlayerLeft,
		domain.EventRoomDeleted,
	}, sink.types())

	for _, e := range sink.events {
		assert.Equal(t, code, e.RoomCode)
		assert.NotEmpty(t, e.ID)
	}
}

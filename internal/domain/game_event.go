package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type GameEventType string

const (
	EventRoomCreated      GameEventType = "room_created"
	EventRoomDeleted      GameEventType = "room_deleted"
	EventPlayerJoined     GameEventType = "player_joined"
	EventPlayerLeft       GameEventType = "player_left"
	EventHostChanged      GameEventType = "host_changed"
	EventGameStarted      GameEventType = "game_started"
	EventRoundStarted     GameEventType = "round_started"
	EventRoundEnded       GameEventType = "round_ended"
	EventRoomFullRejected GameEventType = "room_full_rejected"
)

// Round end reasons.
const (
	RoundEndGuessed    = "guessed"
	RoundEndSkipped    = "skipped"
	RoundEndTimeout    = "timeout"
	RoundEndSetterLeft = "setter_left"
)

type GameEvent struct {
	ID        string         `bson:"_id" json:"id"`
	RoomCode  string         `bson:"room_code" json:"roomCode"`
	EventType GameEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type GameEventRepository interface {
	Log(ctx context.Context, event *GameEvent) error
	GetByRoomCode(ctx context.Context, code string, limit int) ([]GameEvent, error)
	GetByEventType(ctx context.Context, eventType GameEventType, from, to time.Time) ([]GameEvent, error)
	EnsureIndexes(ctx context.Context) error
}

func newGameEvent(code string, eventType GameEventType, metadata map[string]any) *GameEvent {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &GameEvent{
		ID:        uuid.NewString(),
		RoomCode:  code,
		EventType: eventType,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}

func NewRoomCreatedEvent(code, hostNickname string) *GameEvent {
	return newGameEvent(code, EventRoomCreated, map[string]any{
		"host": hostNickname,
	})
}

func NewRoomDeletedEvent(code string) *GameEvent {
	return newGameEvent(code, EventRoomDeleted, nil)
}

func NewPlayerJoinedEvent(code, nickname string, playerCount int) *GameEvent {
	return newGameEvent(code, EventPlayerJoined, map[string]any{
		"nickname":     nickname,
		"player_count": playerCount,
	})
}

func NewPlayerLeftEvent(code, nickname string, playerCount int, wasHost bool) *GameEvent {
	return newGameEvent(code, EventPlayerLeft, map[string]any{
		"nickname":     nickname,
		"player_count": playerCount,
		"was_host":     wasHost,
	})
}

func NewHostChangedEvent(code, newHost string) *GameEvent {
	return newGameEvent(code, EventHostChanged, map[string]any{
		"new_host": newHost,
	})
}

func NewGameStartedEvent(code string, timerSeconds, playerCount int) *GameEvent {
	return newGameEvent(code, EventGameStarted, map[string]any{
		"timer_seconds": timerSeconds,
		"player_count":  playerCount,
	})
}

func NewRoundStartedEvent(code, turnHolder string, epoch uint64) *GameEvent {
	return newGameEvent(code, EventRoundStarted, map[string]any{
		"turn_holder": turnHolder,
		"epoch":       epoch,
	})
}

func NewRoundEndedEvent(code, answer, reason string, award int) *GameEvent {
	return newGameEvent(code, EventRoundEnded, map[string]any{
		"answer": answer,
		"reason": reason,
		"award":  award,
	})
}

func NewRoomFullRejectedEvent(code string) *GameEvent {
	return newGameEvent(code, EventRoomFullRejected, nil)
}

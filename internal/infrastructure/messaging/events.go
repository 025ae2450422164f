package messaging

import "github.com/hanwool95/game-socket-server/internal/domain"

const (
	GameEventsQueue = "game_events"
	DeadLetterQueue = "dead_letter_queue"
)

type GameEventData struct {
	Event domain.GameEvent `json:"event"`
}

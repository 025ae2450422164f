package contracts

import "github.com/hanwool95/game-socket-server/internal/domain"

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	RoomCode string `json:"roomCode"`
	Data     []byte `json:"data"`
}

// Routing keys are "game." followed by the event type, e.g. game.room_created.
const (
	GameEventPrefix   = "game."
	GameEventsPattern = "game.#"
)

func RoutingKey(eventType domain.GameEventType) string {
	return GameEventPrefix + string(eventType)
}

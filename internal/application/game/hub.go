package game

import "github.com/hanwool95/game-socket-server/internal/infrastructure/ws"

// Hub is the outbound side of the transport. Sends must not block; the
// coordinator calls them while holding a room lock.
type Hub interface {
	Join(connectionID, code string)
	Leave(connectionID, code string)
	BroadcastToRoom(code string, msg *ws.WSMessage)
	SendTo(connectionID string, msg *ws.WSMessage)
}

package game

import (
	"context"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

// Disconnect removes a closed connection from its room, if any.
func (c *Coordinator) Disconnect(ctx context.Context, connectionID string) {
	c.leave(ctx, connectionID)
	c.observer.OnDisconnect(connectionID)
}

// LeaveRoom is an explicit leave. It takes the same path as a disconnect but
// keeps the socket open. Leaving a room the caller is not in does nothing.
func (c *Coordinator) LeaveRoom(ctx context.Context, connectionID, code string) error {
	current, ok := c.rooms.RoomOf(connectionID)
	if !ok || current != code {
		return nil
	}
	c.leave(ctx, connectionID)
	return nil
}

func (c *Coordinator) leave(ctx context.Context, connectionID string) {
	var pending []continuation

	c.rooms.RemoveParticipant(ctx, connectionID, func(removal domain.Removal, room *domain.Room) {
		code := removal.Code
		c.hub.Leave(connectionID, code)
		c.observer.OnPlayerLeft(code, removal.Removed.Nickname, len(removal.Participants), removal.HostChanged || removal.Deleted)

		if removal.Deleted {
			c.timers.stop(code)
			c.observer.OnRoomDeleted(code)
			return
		}

		if removal.HostChanged {
			c.hub.BroadcastToRoom(code, ws.NewNewHost(code, removal.NewHost))
			c.observer.OnHostChanged(code, removal.NewHost)
		}
		c.hub.BroadcastToRoom(code, ws.NewUpdateUsers(code, room.Nicknames()))

		if room.Phase != domain.PhaseInProgress {
			return
		}
		c.hub.BroadcastToRoom(code, ws.NewUpdateScores(code, room.Scores()))

		// The game must not wait on a setter who is gone.
		if removal.WasTurn && room.HasActiveRound() {
			pending = append(pending, c.endRound(room, domain.RoundEndSetterLeft))
		}
	})

	for _, k := range pending {
		c.advance(ctx, k)
	}
}

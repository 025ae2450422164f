package game

import (
	"context"
	"errors"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

// CreateRoom opens a room with the caller as host and sole participant.
func (c *Coordinator) CreateRoom(ctx context.Context, connectionID, nickname string) error {
	_, err := c.rooms.Create(ctx, connectionID, nickname, func(room *domain.Room) {
		c.hub.Join(connectionID, room.Code)
		c.hub.SendTo(connectionID, ws.NewRoomCreated(room.Code))
		c.hub.BroadcastToRoom(room.Code, ws.NewUpdateUsers(room.Code, room.Nicknames()))
		c.hub.SendTo(connectionID, ws.NewNewHost(room.Code, room.HostConnectionID))
		c.observer.OnRoomCreated(room.Code, nickname)
	})
	return err
}

// JoinRoom adds the caller to an existing room. A player joining a game in
// progress is caught up with the scores and the current round.
func (c *Coordinator) JoinRoom(ctx context.Context, connectionID, code, nickname string) error {
	_, err := c.rooms.Join(ctx, code, connectionID, nickname, func(room *domain.Room) {
		c.hub.Join(connectionID, room.Code)
		c.hub.SendTo(connectionID, ws.NewJoinedRoom(room.Code))
		c.hub.BroadcastToRoom(room.Code, ws.NewUpdateUsers(room.Code, room.Nicknames()))
		c.observer.OnPlayerJoined(room.Code, nickname, len(room.Participants))

		if room.Phase != domain.PhaseInProgress {
			return
		}
		c.hub.SendTo(connectionID, ws.NewUpdateScores(room.Code, room.Scores()))
		if holder, ok := room.TurnHolder(); ok && room.HasActiveRound() {
			c.hub.SendTo(connectionID, ws.NewYourTurn(room.Code, holder.Nickname))
			c.hub.SendTo(connectionID, ws.NewSecretMedia(room.Code, room.Secret.MediaRef, room.RoundTimerSeconds))
			if room.Hint != "" {
				c.hub.SendTo(connectionID, ws.NewAddHint(room.Code, room.Hint))
			}
		}
	})
	if errors.Is(err, domain.ErrRoomFull) {
		c.observer.OnRoomFullRejected(code)
	}
	return err
}

// StartGame moves a lobby into play. Only the host may start, and only once.
// The first secret is fetched with no lock held; the start commits only if
// nothing else started or advanced the room meanwhile.
func (c *Coordinator) StartGame(ctx context.Context, connectionID, code string, requestedTimer int) error {
	ctx, span := c.tracer.Start(ctx, "game.StartGame")
	defer span.End()

	timer := c.timerSeconds(requestedTimer)

	var k continuation
	err := c.rooms.WithRoom(ctx, code, func(room *domain.Room) error {
		if !room.IsHost(connectionID) {
			return domain.ErrNotHost
		}
		if room.Phase != domain.PhaseLobby || room.Advancing {
			return domain.ErrGameAlreadyStarted
		}
		room.Advancing = true
		k = resumeFrom(room)
		return nil
	})
	if err != nil {
		return err
	}

	secret, fetchErr := c.fetchSecret(ctx, code)

	err = c.rooms.WithRoom(context.WithoutCancel(ctx), code, func(room *domain.Room) error {
		if !k.matches(room) || !room.Advancing || room.Phase != domain.PhaseLobby {
			return errStale
		}
		if fetchErr != nil {
			room.AbortAdvance()
			c.hub.BroadcastToRoom(room.Code, ws.NewError(msgSecretUnavailable))
			return nil
		}

		room.Start(timer, secret)
		c.hub.BroadcastToRoom(room.Code, ws.NewGameStarted(room.Code, room.Scores(), timer))
		c.observer.OnGameStarted(room.Code, timer, len(room.Participants))
		c.emitRoundStart(room)
		return nil
	})
	c.logStale(k, err)
	return nil
}

// Chat relays a message to the room under the sender's registered nickname.
func (c *Coordinator) Chat(ctx context.Context, connectionID, code, message string) error {
	return c.rooms.WithRoom(ctx, code, func(room *domain.Room) error {
		sender, ok := room.Participant(connectionID)
		if !ok {
			return nil
		}
		c.hub.BroadcastToRoom(room.Code, ws.NewChat(room.Code, sender.Nickname, message))
		return nil
	})
}

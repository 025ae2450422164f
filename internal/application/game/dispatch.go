package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

// Dispatcher decodes client frames and routes them to the Coordinator.
// Every client error ends up as a unicast error frame to the sender.
type Dispatcher struct {
	coordinator *Coordinator
	decoder     *ws.Decoder
}

func NewDispatcher(coordinator *Coordinator, limits ws.Limits) *Dispatcher {
	return &Dispatcher{
		coordinator: coordinator,
		decoder:     ws.NewDecoder(limits),
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, connectionID string, raw []byte) {
	cmd, err := d.decoder.Decode(raw)
	if err != nil {
		if !errors.Is(err, ws.ErrMalformedFrame) && !errors.Is(err, ws.ErrUnknownEvent) {
			err = fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		d.reject(connectionID, "", err)
		return
	}

	if err := d.handle(ctx, connectionID, cmd); err != nil {
		d.reject(connectionID, cmd.Event(), err)
	}
}

func (d *Dispatcher) handle(ctx context.Context, connectionID string, cmd ws.Command) error {
	c := d.coordinator
	switch cmd := cmd.(type) {
	case ws.CreateRoomCommand:
		return c.CreateRoom(ctx, connectionID, cmd.Nickname)
	case ws.JoinRoomCommand:
		return c.JoinRoom(ctx, connectionID, cmd.RoomCode, cmd.Nickname)
	case ws.StartGameCommand:
		return c.StartGame(ctx, connectionID, cmd.RoomCode, cmd.TimerSeconds)
	case ws.SubmitGuessCommand:
		return c.SubmitGuess(ctx, connectionID, cmd.RoomCode, cmd.Guess)
	case ws.SkipRoundCommand:
		return c.SkipRound(ctx, connectionID, cmd.RoomCode)
	case ws.AddHintCommand:
		return c.AddHint(ctx, connectionID, cmd.RoomCode, cmd.HintFragment)
	case ws.ChatCommand:
		return c.Chat(ctx, connectionID, cmd.RoomCode, cmd.Message)
	case ws.LeaveRoomCommand:
		return c.LeaveRoom(ctx, connectionID, cmd.RoomCode)
	default:
		return fmt.Errorf("%w: %q", ws.ErrUnknownEvent, cmd.Event())
	}
}

func (d *Dispatcher) reject(connectionID, event string, err error) {
	d.coordinator.observer.OnClientError(connectionID, event, err)
	d.coordinator.hub.SendTo(connectionID, ws.NewError(UserMessage(err)))
}

package ws

import (
	"context"
	"errors"

	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
)

var ErrCoreStopped = errors.New("websocket core stopped")

// Core owns the connection set. Registration goes through Run; room fan-out
// and unicast go straight to the RoomManager so callers keep their ordering.
type Core struct {
	roomMgr    *RoomManager
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     logging.Logger
}

func NewCore(logger logging.Logger, onDrop func(connectionID string)) *Core {
	core := &Core{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
	core.roomMgr = NewRoomManager(func(id string) {
		logger.Warn(logging.Connection, logging.WriteFailed, "client buffer full, dropping message", map[logging.ExtraKey]any{
			logging.ConnectionID: id,
		})
		if onDrop != nil {
			onDrop(id)
		}
	})
	return core
}

func (c *Core) Run(ctx context.Context) {
	defer close(c.done)

	for {
		select {
		case cl := <-c.register:
			c.roomMgr.AddClient(cl)
			close(cl.registered)

		case cl := <-c.unregister:
			c.roomMgr.RemoveClient(cl)

		case <-ctx.Done():
			c.roomMgr.CloseAll()
			return
		}
	}
}

// Register blocks until the client can receive messages or ctx ends.
func (c *Core) Register(ctx context.Context, cl *Client) error {
	select {
	case c.register <- cl:
	case <-c.done:
		return ErrCoreStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cl.registered:
		return nil
	case <-c.done:
		return ErrCoreStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Core) Unregister(ctx context.Context, cl *Client) {
	select {
	case c.unregister <- cl:
	case <-c.done:
	case <-ctx.Done():
	}
}

func (c *Core) Join(connectionID, code string) {
	if err := c.roomMgr.Join(connectionID, code); err != nil {
		c.logger.Debug(logging.Connection, logging.WriteFailed, "join on unknown client", map[logging.ExtraKey]any{
			logging.ConnectionID: connectionID,
			logging.RoomCode:     code,
		})
	}
}

func (c *Core) Leave(connectionID, code string) {
	c.roomMgr.Leave(connectionID, code)
}

func (c *Core) BroadcastToRoom(code string, msg *WSMessage) {
	if msg.RoomCode == "" {
		msg.RoomCode = code
	}
	_ = c.roomMgr.BroadcastToRoom(code, msg)
}

func (c *Core) SendTo(connectionID string, msg *WSMessage) {
	_ = c.roomMgr.SendTo(connectionID, msg)
}

func (c *Core) ClientCount() int {
	return c.roomMgr.ClientCount()
}

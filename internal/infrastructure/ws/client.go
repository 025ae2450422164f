package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

type Client struct {
	conn       *connWrapper
	Message    chan *WSMessage
	ID         string `json:"id"`
	registered chan struct{}
}

func NewClient(conn *websocket.Conn, id string) *Client {
	return &Client{
		conn:       newConnWrapper(conn),
		Message:    make(chan *WSMessage, sendBuffer), // buffered to avoid dead-locks on slow clients
		ID:         id,
		registered: make(chan struct{}),
	}
}

// ReadMessage pumps frames to handle until the connection fails. The caller
// owns what happens after it returns.
func (c *Client) ReadMessage(logger logging.Logger, handle func(raw []byte)) {
	c.conn.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.conn.SetPongHandler(func(string) error {
		return c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warn(logging.Connection, logging.Disconnected, "ws read error", map[logging.ExtraKey]any{
					logging.ConnectionID: c.ID,
					logging.ErrorMessage: err.Error(),
				})
			}
			return
		}
		handle(raw)
	}
}

// WriteMessage drains the outbound queue until it is closed by the core.
func (c *Client) WriteMessage(logger logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Message:
			if !ok {
				c.conn.CloseGracefully(writeWait)
				return
			}
			if err := c.conn.WriteJSON(msg, writeWait); err != nil {
				logger.Warn(logging.Connection, logging.WriteFailed, "ws write error", map[logging.ExtraKey]any{
					logging.ConnectionID: c.ID,
					logging.ErrorMessage: err.Error(),
				})
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(writeWait); err != nil {
				return
			}
		}
	}
}

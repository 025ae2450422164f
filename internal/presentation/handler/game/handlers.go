package game

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	gameapp "github.com/hanwool95/game-socket-server/internal/application/game"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
	"github.com/hanwool95/game-socket-server/internal/presentation/utils"
)

type Handler struct {
	core        *ws.Core
	coordinator *gameapp.Coordinator
	dispatcher  *gameapp.Dispatcher
	upgrader    websocket.Upgrader
	logger      logging.Logger

	mu       sync.Mutex
	draining bool
	active   sync.WaitGroup
}

func NewHandler(
	core *ws.Core,
	coordinator *gameapp.Coordinator,
	dispatcher *gameapp.Dispatcher,
	allowedOrigins []string,
	logger logging.Logger,
) *Handler {
	return &Handler{
		core:        core,
		coordinator: coordinator,
		dispatcher:  dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return utils.OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
		logger: logger,
	}
}

// ServeWS godoc
// @Summary      Game socket
// @Description  Upgrades to a websocket. Frames are JSON objects {"type": event, "data": payload}.
// @Tags         game
// @Success      101 "Switching protocols"
// @Failure      403 "Origin not allowed"
// @Router       /ws [get]
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !h.track() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.active.Done()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(logging.Connection, logging.Connected, "websocket upgrade failed", map[logging.ExtraKey]any{
			logging.ClientIp:     r.RemoteAddr,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, uuid.NewString())
	ctx := r.Context()

	if err := h.core.Register(ctx, client); err != nil {
		_ = conn.Close()
		return
	}

	go client.WriteMessage(h.logger)

	h.coordinator.Connect(ctx, client.ID)
	client.ReadMessage(h.logger, func(raw []byte) {
		h.dispatcher.Dispatch(ctx, client.ID, raw)
	})

	// The request context may already be gone; cleanup must still run.
	cleanup := context.WithoutCancel(ctx)
	h.coordinator.Disconnect(cleanup, client.ID)
	h.core.Unregister(cleanup, client)
}

func (h *Handler) track() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.draining {
		return false
	}
	h.active.Add(1)
	return true
}

// Drain refuses new sockets and waits until every open one has run its
// disconnect cleanup. Sockets only end once the websocket core stops or the
// peers hang up, so stop the core first.
func (h *Handler) Drain(ctx context.Context) error {
	h.mu.Lock()
	h.draining = true
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.active.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("websocket handlers still running"), ctx.Err())
	}
}

package rooms

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/json"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

type RoomCounter interface {
	Count() int
}

type ClientCounter interface {
	ClientCount() int
}

type Handler struct {
	rooms    RoomCounter
	clients  ClientCounter
	auditLog domain.GameEventRepository
	logger   logging.Logger
}

// NewHandler builds the rooms handler. auditLog may be nil when no document
// store is configured; the events route then answers 503.
func NewHandler(
	rooms RoomCounter,
	clients ClientCounter,
	auditLog domain.GameEventRepository,
	logger logging.Logger,
) *Handler {
	return &Handler{
		rooms:    rooms,
		clients:  clients,
		auditLog: auditLog,
		logger:   logger,
	}
}

// GetStatsHandler godoc
// @Summary      Live room statistics
// @Description  Returns the number of live rooms and open websocket connections
// @Tags         rooms
// @Produce      json
// @Success      200 {object} statsResponse
// @Router       /rooms/stats [get]
func (h *Handler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, statsResponse{
		Rooms:       h.rooms.Count(),
		Connections: h.clients.ClientCount(),
	})
}

// GetRoomEventsHandler godoc
// @Summary      Room audit log
// @Description  Returns the most recent lifecycle events recorded for a room code, newest first
// @Tags         rooms
// @Produce      json
// @Param        code   path   string  true   "Room code"
// @Param        limit  query  int     false  "Maximum number of events (default 50, max 500)"
// @Success      200 {object} eventsResponse
// @Failure      400 {object} map[string]interface{} "Bad request"
// @Failure      503 {object} map[string]interface{} "Audit log disabled"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /rooms/{code}/events [get]
func (h *Handler) GetRoomEventsHandler(w http.ResponseWriter, r *http.Request) {
	if h.auditLog == nil {
		json.WriteError(w, http.StatusServiceUnavailable, errors.New("audit log disabled"), "Audit log is not enabled")
		return
	}

	code := chi.URLParam(r, "code")
	if code == "" {
		json.WriteValidationError(w, errors.New("room code is missing"))
		return
	}

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			json.WriteBadRequestError(w, "limit must be a positive integer")
			return
		}
		limit = min(n, maxEventLimit)
	}

	events, err := h.auditLog.GetByRoomCode(r.Context(), code, limit)
	if err != nil {
		h.logger.Error(logging.Persistence, logging.Select, "failed to read room events", map[logging.ExtraKey]any{
			logging.RoomCode:     code,
			logging.ErrorMessage: err.Error(),
		})
		json.WriteInternalError(w, err)
		return
	}

	resp := eventsResponse{
		RoomCode: code,
		Events:   make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, eventResponse{
			ID:        e.ID,
			EventType: string(e.EventType),
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
			Metadata:  e.Metadata,
		})
	}
	json.Write(w, http.StatusOK, resp)
}

package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/hanwool95/game-socket-server/internal/infrastructure/json"
)

const (
	statusOK        = "ok"
	statusUnhealthy = "unhealthy"

	checkTimeout = 2 * time.Second
)

// Check probes one backend. A nil error means healthy.
type Check func(ctx context.Context) error

type Handler struct {
	startedAt time.Time
	checks    map[string]Check
}

type Option func(*Handler)

func WithCheck(name string, check Check) Option {
	return func(h *Handler) {
		h.checks[name] = check
	}
}

func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		startedAt: time.Now(),
		checks:    make(map[string]Check),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GetHealth godoc
// @Summary      Health check
// @Description  Reports uptime and the state of every configured backend
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse
// @Failure      503 {object} healthResponse "A backend check failed"
// @Router       /health [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	data := healthResponse{
		Status:    statusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	}

	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)

		data.Checks = make(map[string]string, len(names))
		for _, name := range names {
			if err := h.checks[name](ctx); err != nil {
				data.Checks[name] = err.Error()
				data.Status = statusUnhealthy
				continue
			}
			data.Checks[name] = statusOK
		}
	}

	status := http.StatusOK
	if data.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	json.Write(w, status, data)
}

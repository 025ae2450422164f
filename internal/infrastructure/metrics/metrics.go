package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "game"

// Metrics defines our Prometheus metrics. Its On* methods match the game
// coordinator's observer hooks.
type Metrics struct {
	registry *prometheus.Registry

	connections     prometheus.Gauge
	rooms           prometheus.Gauge
	players         *prometheus.GaugeVec
	gamesStarted    prometheus.Counter
	roundsStarted   prometheus.Counter
	roundsEnded     *prometheus.CounterVec
	awardPoints     prometheus.Histogram
	guesses         *prometheus.CounterVec
	hints           prometheus.Counter
	fullRejected    prometheus.Counter
	clientErrors    *prometheus.CounterVec
	droppedFrames   prometheus.Counter
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Open websocket connections.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Live rooms.",
		}),
		players: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "room_players",
			Help:      "Participants per live room.",
		}, []string{"room"}),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games moved from lobby to in progress.",
		}),
		roundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Rounds committed with a new secret.",
		}),
		roundsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_ended_total",
			Help:      "Rounds ended, by reason.",
		}, []string{"reason"}),
		awardPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "award_points",
			Help:      "Points awarded per correct guess.",
			Buckets:   []float64{0, 100, 200, 300, 400},
		}),
		guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Guesses by result.",
		}, []string{"result"}),
		hints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hints_total",
			Help:      "Hint fragments added.",
		}),
		fullRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_full_rejections_total",
			Help:      "Joins rejected because the room was full.",
		}),
		clientErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_errors_total",
			Help:      "Inbound events answered with an error frame.",
		}, []string{"event"}),
		droppedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_dropped_frames_total",
			Help:      "Outbound frames dropped because a client queue was full.",
		}),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.connections,
		m.rooms,
		m.players,
		m.gamesStarted,
		m.roundsStarted,
		m.roundsEnded,
		m.awardPoints,
		m.guesses,
		m.hints,
		m.fullRejected,
		m.clientErrors,
		m.droppedFrames,
		m.requestCount,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// DroppedFrame counts a frame that a slow client never received. It runs
// under the hub lock and must not block.
func (m *Metrics) DroppedFrame(string) {
	m.droppedFrames.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestCount.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

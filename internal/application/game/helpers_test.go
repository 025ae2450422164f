package game_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/hanwool95/game-socket-server/internal/application/game"
	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/repository"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

// recordingHub keeps every frame each connection would have received.
type recordingHub struct {
	mu      sync.Mutex
	members map[string]map[string]bool
	inbox   map[string][]*ws.WSMessage
}

func newRecordingHub() *recordingHub {
	return &recordingHub{
		members: make(map[string]map[string]bool),
		inbox:   make(map[string][]*ws.WSMessage),
	}
}

func (h *recordingHub) Join(connectionID, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.members[code] == nil {
		h.members[code] = make(map[string]bool)
	}
	h.members[code][connectionID] = true
}

func (h *recordingHub) Leave(connectionID, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.members[code], connectionID)
}

func (h *recordingHub) BroadcastToRoom(code string, msg *ws.WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.members[code] {
		h.inbox[id] = append(h.inbox[id], msg)
	}
}

func (h *recordingHub) SendTo(connectionID string, msg *ws.WSMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inbox[connectionID] = append(h.inbox[connectionID], msg)
}

// take returns and clears everything connectionID received so far.
func (h *recordingHub) take(connectionID string) []*ws.WSMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.inbox[connectionID]
	delete(h.inbox, connectionID)
	return msgs
}

func (h *recordingHub) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inbox = make(map[string][]*ws.WSMessage)
}

func typesOf(msgs []*ws.WSMessage) []string {
	types := make([]string, 0, len(msgs))
	for _, m := range msgs {
		types = append(types, m.Type)
	}
	return types
}

func ofType(msgs []*ws.WSMessage, typ string) []*ws.WSMessage {
	var out []*ws.WSMessage
	for _, m := range msgs {
		if m.Type == typ {
			out = append(out, m)
		}
	}
	return out
}

// stubProvider hands out secrets from names in order. Setting gate makes
// each fetch wait until the gate is closed; entered is signalled once the
// fetch is waiting.
type stubProvider struct {
	mu      sync.Mutex
	names   []string
	next    int
	fail    bool
	gate    chan struct{}
	entered chan struct{}
	calls   int
}

func newStubProvider(names ...string) *stubProvider {
	if len(names) == 0 {
		names = []string{"pikachu", "bulbasaur", "charmander", "squirtle"}
	}
	return &stubProvider{names: names}
}

func (p *stubProvider) FetchRandomSecret(ctx context.Context) (domain.Secret, error) {
	p.mu.Lock()
	p.calls++
	gate, entered, fail := p.gate, p.entered, p.fail
	name := ""
	if !fail {
		name = p.names[p.next%len(p.names)]
		p.next++
	}
	p.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.Secret{}, ctx.Err()
		}
	}
	if fail {
		return domain.Secret{}, domain.ErrSecretUnavailable
	}
	return domain.Secret{DisplayName: name, MediaRef: "https://img.test/" + name + ".png"}, nil
}

func (p *stubProvider) setFail(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

// block makes the next fetches wait. Close the returned gate to let them
// through.
func (p *stubProvider) block() (gate chan struct{}, entered chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gate = make(chan struct{})
	p.entered = make(chan struct{}, 4)
	return p.gate, p.entered
}

type manualTimer struct {
	d       time.Duration
	fire    func()
	stopped bool
}

// manualClock records deadlines instead of scheduling them. Tests fire
// them by hand.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (m *manualClock) AfterFunc(d time.Duration, f func()) func() bool {
	t := &manualTimer{d: d, fire: f}
	m.mu.Lock()
	m.timers = append(m.timers, t)
	m.mu.Unlock()
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		wasActive := !t.stopped
		t.stopped = true
		return wasActive
	}
}

func (m *manualClock) active() []*manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*manualTimer
	for _, t := range m.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

func (m *manualClock) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

type failingHints struct{}

func (failingHints) RecordHint(context.Context, string, string) error {
	return domain.ErrInvalidInput
}

// countingObserver counts the notifications tests care about.
type countingObserver struct {
	game.NopObserver
	mu           sync.Mutex
	fullRejected int
	roundsEnded  []string
	clientErrors int
}

func (o *countingObserver) OnRoomFullRejected(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fullRejected++
}

func (o *countingObserver) OnRoundEnded(_, _, reason string, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.roundsEnded = append(o.roundsEnded, reason)
}

func (o *countingObserver) OnClientError(string, string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clientErrors++
}

type fixture struct {
	coord    *game.Coordinator
	dispatch *game.Dispatcher
	rooms    domain.RoomRepository
	hub      *recordingHub
	provider *stubProvider
	hints    repository.HintRepository
	clock    *manualClock
	observer *countingObserver
}

type fixtureOption func(*fixtureSetup)

type fixtureSetup struct {
	cfg       game.Config
	hints     domain.HintStore
	observers []game.Observer
}

func withConfig(mut func(*game.Config)) fixtureOption {
	return func(s *fixtureSetup) { mut(&s.cfg) }
}

func withHintStore(store domain.HintStore) fixtureOption {
	return func(s *fixtureSetup) { s.hints = store }
}

func withObservers(observers ...game.Observer) fixtureOption {
	return func(s *fixtureSetup) { s.observers = append(s.observers, observers...) }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	f := &fixture{
		rooms:    repository.NewRoomRepository(),
		hub:      newRecordingHub(),
		provider: newStubProvider(),
		hints:    repository.NewHintRepository(10),
		clock:    &manualClock{},
		observer: &countingObserver{},
	}

	setup := fixtureSetup{cfg: game.DefaultConfig(), hints: f.hints}
	for _, opt := range opts {
		opt(&setup)
	}

	logger := logging.NewZapLoggerWithCore(zapcore.NewNopCore())
	f.coord = game.NewCoordinator(f.rooms, f.provider, setup.hints, f.hub, logger, setup.cfg,
		game.WithAfterFunc(f.clock.AfterFunc),
		game.WithObserver(append([]game.Observer{game.NewLogObserver(logger), f.observer}, setup.observers...)...),
	)
	f.dispatch = game.NewDispatcher(f.coord, ws.DefaultLimits())
	t.Cleanup(f.coord.Close)
	return f
}

func (f *fixture) createRoom(t *testing.T, connectionID, nickname string) string {
	t.Helper()
	require.NoError(t, f.coord.CreateRoom(context.Background(), connectionID, nickname))
	code, ok := f.rooms.RoomOf(connectionID)
	require.True(t, ok)
	return code
}

func (f *fixture) join(t *testing.T, connectionID, code, nickname string) {
	t.Helper()
	require.NoError(t, f.coord.JoinRoom(context.Background(), connectionID, code, nickname))
}

// lobby creates a room hosted by the first id and joins the rest. Nicknames
// are the upper-cased ids.
func (f *fixture) lobby(t *testing.T, ids ...string) string {
	t.Helper()
	code := f.createRoom(t, ids[0], nick(ids[0]))
	for _, id := range ids[1:] {
		f.join(t, id, code, nick(id))
	}
	return code
}

// playing is lobby followed by a successful start with a 60 second timer.
func (f *fixture) playing(t *testing.T, ids ...string) string {
	t.Helper()
	code := f.lobby(t, ids...)
	require.NoError(t, f.coord.StartGame(context.Background(), ids[0], code, 60))
	room := f.room(t, code)
	require.Equal(t, domain.PhaseInProgress, room.Phase)
	f.hub.reset()
	return code
}

func (f *fixture) room(t *testing.T, code string) *domain.Room {
	t.Helper()
	room, err := f.rooms.GetByCode(context.Background(), code)
	require.NoError(t, err)
	return room
}

func nick(id string) string {
	return strings.ToUpper(id)
}

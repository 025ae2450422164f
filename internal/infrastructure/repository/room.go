package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/hanwool95/game-socket-server/internal/domain"
)

const defaultCodeAttempts = 32

var ErrCodeSpaceExhausted = errors.New("could not generate a free room code")

// roomEntry guards one room. closed is set under both locks when the room is
// dropped from the registry so late lockers can tell it is gone.
type roomEntry struct {
	mu     sync.Mutex
	room   *domain.Room
	closed bool
}

// roomRepository keeps live rooms in memory. Lock order is entry.mu before
// r.mu; nothing takes an entry lock while holding r.mu.
type roomRepository struct {
	rooms       map[string]*roomEntry // code -> room
	memberIndex map[string]string     // connectionID -> code
	generate    domain.CodeGenerator
	attempts    int
	mu          *sync.RWMutex
}

type RoomRepositoryOption func(*roomRepository)

func WithCodeGenerator(gen domain.CodeGenerator) RoomRepositoryOption {
	return func(r *roomRepository) {
		if gen != nil {
			r.generate = gen
		}
	}
}

func WithCodeAttempts(n int) RoomRepositoryOption {
	return func(r *roomRepository) {
		if n > 0 {
			r.attempts = n
		}
	}
}

func NewRoomRepository(opts ...RoomRepositoryOption) domain.RoomRepository {
	r := &roomRepository{
		rooms:       make(map[string]*roomEntry),
		memberIndex: make(map[string]string),
		generate:    domain.GenerateCode,
		attempts:    defaultCodeAttempts,
		mu:          &sync.RWMutex{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new room with the creator as host under a code that no
// live room uses. Hooks run before any other caller can reach the room.
func (r *roomRepository) Create(ctx context.Context, connectionID, nickname string, hooks ...domain.RoomHook) (*domain.Room, error) {
	host, err := domain.NewParticipant(connectionID, nickname)
	if err != nil {
		return nil, err
	}

	e, err := r.insert(connectionID, host)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	for _, hook := range hooks {
		hook(e.room)
	}

	return e.room.Clone(), nil
}

// insert publishes a new room whose entry lock is already held by the caller.
// The lock is taken before the entry becomes reachable, so lock order holds.
func (r *roomRepository) insert(connectionID string, host domain.Participant) (*roomEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.memberIndex[connectionID]; exists {
		return nil, domain.ErrAlreadyInRoom
	}

	code, err := r.freeCode()
	if err != nil {
		return nil, err
	}

	e := &roomEntry{room: domain.NewRoom(code, host)}
	e.mu.Lock()
	r.rooms[code] = e
	r.memberIndex[connectionID] = code
	return e, nil
}

// admit must be called with the room entry locked.
func (r *roomRepository) admit(room *domain.Room, p domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.memberIndex[p.ConnectionID]; exists {
		return domain.ErrAlreadyInRoom
	}
	if err := room.AddParticipant(p); err != nil {
		return err
	}
	r.memberIndex[p.ConnectionID] = room.Code
	return nil
}

// freeCode must be called with r.mu held.
func (r *roomRepository) freeCode() (string, error) {
	for i := 0; i < r.attempts; i++ {
		code, err := r.generate()
		if err != nil {
			return "", err
		}
		if _, taken := r.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (r *roomRepository) entry(code string) (*roomEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rooms[code]
	return e, ok
}

// GetByCode returns a copy of the room.
func (r *roomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *domain.Room
	err := r.WithRoom(ctx, code, func(room *domain.Room) error {
		out = room.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *roomRepository) Join(ctx context.Context, code, connectionID, nickname string, hooks ...domain.RoomHook) (*domain.Room, error) {
	p, err := domain.NewParticipant(connectionID, nickname)
	if err != nil {
		return nil, err
	}

	var out *domain.Room
	err = r.WithRoom(ctx, code, func(room *domain.Room) error {
		if err := r.admit(room, p); err != nil {
			return err
		}
		for _, hook := range hooks {
			hook(room)
		}
		out = room.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveParticipant takes the connection out of whichever room holds it.
// Unknown connections are a no-op.
func (r *roomRepository) RemoveParticipant(ctx context.Context, connectionID string, hooks ...domain.RemovalHook) []domain.Removal {
	r.mu.RLock()
	code, ok := r.memberIndex[connectionID]
	e := r.rooms[code]
	r.mu.RUnlock()
	if !ok || e == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	removal, err := e.room.RemoveParticipant(connectionID)
	if err != nil {
		return nil
	}

	r.mu.Lock()
	delete(r.memberIndex, connectionID)
	if removal.Deleted {
		e.closed = true
		delete(r.rooms, code)
	}
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(removal, e.room)
	}

	return []domain.Removal{removal}
}

// WithRoom runs fn while holding the room's lock. fn must not call back into
// the repository's room-locking methods.
func (r *roomRepository) WithRoom(ctx context.Context, code string, fn func(*domain.Room) error) error {
	e, ok := r.entry(code)
	if !ok {
		return domain.ErrRoomNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return domain.ErrRoomNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(e.room)
}

func (r *roomRepository) RoomOf(connectionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.memberIndex[connectionID]
	return code, ok
}

func (r *roomRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *roomRepository) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.rooms))
	for code := range r.rooms {
		codes = append(codes, code)
	}
	return codes
}

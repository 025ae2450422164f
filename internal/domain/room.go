package domain

import (
	"context"
	"errors"
	"time"
)

const (
	MaxParticipants = 8
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrDuplicateNickname   = errors.New("nickname already taken in room")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyInRoom       = errors.New("already in room")
	ErrNotHost             = errors.New("only the host can do this")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrNoActiveRound       = errors.New("no active round")
	ErrRoomClosed          = errors.New("room is closed")
)

type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseInProgress Phase = "in_progress"
)

type Room struct {
	Code              string        `json:"code"`
	Participants      []Participant `json:"participants"`
	HostConnectionID  string        `json:"hostConnectionId"`
	TurnIndex         int           `json:"turnIndex"`
	Secret            Secret        `json:"-"`
	Hint              string        `json:"hint"`
	RoundTimerSeconds int           `json:"roundTimerSeconds"`
	Phase             Phase         `json:"phase"`
	CreatedAt         time.Time     `json:"createdAt"`

	// RoundEpoch increments on every committed round change. Work that
	// suspends captures it and compares on resume.
	RoundEpoch  uint64 `json:"roundEpoch"`
	// Advancing is set while a secret fetch for the next round is outstanding.
	Advancing   bool   `json:"advancing"`
	// TurnVacated is set when the turn holder left; the clamped index already
	// names the next player, so the next advance must not move it again.
	TurnVacated bool   `json:"-"`
}

// Removal describes what happened to one room when a connection left it.
type Removal struct {
	Code         string
	Removed      Participant
	WasTurn      bool
	HostChanged  bool
	NewHost      string
	Deleted      bool
	Participants []Participant
}

// RoomHook runs while the room is locked, right after a successful change.
type RoomHook func(room *Room)

// RemovalHook runs while the room is locked. room may already be empty.
type RemovalHook func(removal Removal, room *Room)

type RoomRepository interface {
	Create(ctx context.Context, connectionID, nickname string, hooks ...RoomHook) (*Room, error)
	GetByCode(ctx context.Context, code string) (*Room, error)
	Join(ctx context.Context, code, connectionID, nickname string, hooks ...RoomHook) (*Room, error)
	RemoveParticipant(ctx context.Context, connectionID string, hooks ...RemovalHook) []Removal
	WithRoom(ctx context.Context, code string, fn func(*Room) error) error
	RoomOf(connectionID string) (string, bool)
	Count() int
	Codes() []string
}

func NewRoom(code string, host Participant) *Room {
	room := &Room{
		Code:             code,
		Participants:     make([]Participant, 0, MaxParticipants),
		HostConnectionID: host.ConnectionID,
		Phase:            PhaseLobby,
		CreatedAt:        time.Now(),
	}
	room.Participants = append(room.Participants, host)
	return room
}

func (r *Room) IsHost(connectionID string) bool {
	return connectionID != "" && r.HostConnectionID == connectionID
}

func (r *Room) IndexOf(connectionID string) int {
	for i, p := range r.Participants {
		if p.ConnectionID == connectionID {
			return i
		}
	}
	return -1
}

func (r *Room) IsParticipant(connectionID string) bool {
	return r.IndexOf(connectionID) >= 0
}

func (r *Room) Participant(connectionID string) (Participant, bool) {
	idx := r.IndexOf(connectionID)
	if idx < 0 {
		return Participant{}, false
	}
	return r.Participants[idx], true
}

func (r *Room) IsEmpty() bool {
	return len(r.Participants) == 0
}

func (r *Room) AddParticipant(p Participant) error {
	if len(r.Participants) >= MaxParticipants {
		return ErrRoomFull
	}
	for _, existing := range r.Participants {
		if existing.ConnectionID == p.ConnectionID {
			return ErrAlreadyInRoom
		}
		if existing.Nickname == p.Nickname {
			return ErrDuplicateNickname
		}
	}
	r.Participants = append(r.Participants, p)
	return nil
}

// RemoveParticipant drops the connection, keeps the remaining order, moves
// the host to the first remaining participant and re-clamps the turn index.
func (r *Room) RemoveParticipant(connectionID string) (Removal, error) {
	idx := r.IndexOf(connectionID)
	if idx == -1 {
		return Removal{}, ErrParticipantNotFound
	}

	removal := Removal{
		Code:    r.Code,
		Removed: r.Participants[idx],
		WasTurn: idx == r.TurnIndex,
	}

	r.Participants = append(r.Participants[:idx], r.Participants[idx+1:]...)
	if removal.WasTurn {
		r.TurnVacated = true
	}

	switch {
	case idx < r.TurnIndex:
		r.TurnIndex--
	case r.TurnIndex >= len(r.Participants):
		r.TurnIndex = 0
	}

	if r.HostConnectionID == connectionID {
		if len(r.Participants) > 0 {
			r.HostConnectionID = r.Participants[0].ConnectionID
			removal.HostChanged = true
			removal.NewHost = r.HostConnectionID
		} else {
			r.HostConnectionID = ""
		}
	}

	removal.Deleted = len(r.Participants) == 0
	removal.Participants = r.Snapshot()
	return removal, nil
}

func (r *Room) TurnHolder() (Participant, bool) {
	if r.TurnIndex < 0 || r.TurnIndex >= len(r.Participants) {
		return Participant{}, false
	}
	return r.Participants[r.TurnIndex], true
}

func (r *Room) Nicknames() []string {
	names := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		names = append(names, p.Nickname)
	}
	return names
}

func (r *Room) Scores() []Score {
	scores := make([]Score, 0, len(r.Participants))
	for _, p := range r.Participants {
		scores = append(scores, Score{Nickname: p.Nickname, Score: p.Score})
	}
	return scores
}

func (r *Room) ConnectionIDs() []string {
	ids := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		ids = append(ids, p.ConnectionID)
	}
	return ids
}

// Clone copies the room so callers can read it without holding its lock.
func (r *Room) Clone() *Room {
	cpy := *r
	cpy.Participants = r.Snapshot()
	return &cpy
}

// Snapshot returns a copy of the participant list safe to use after the
// room lock is released.
func (r *Room) Snapshot() []Participant {
	out := make([]Participant, len(r.Participants))
	copy(out, r.Participants)
	return out
}

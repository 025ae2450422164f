package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hanwool95/game-socket-server/internal/domain"
)

func newRoomWith(t testing.TB, nicknames ...string) *domain.Room {
	t.Helper()
	host, err := domain.NewParticipant("c0", nicknames[0])
	require.NoError(t, err)
	room := domain.NewRoom("abcde", host)
	for i, n := range nicknames[1:] {
		p, err := domain.NewParticipant(fmt.Sprintf("c%d", i+1), n)
		require.NoError(t, err)
		require.NoError(t, room.AddParticipant(p))
	}
	return room
}

func TestNewRoom_CreatorIsHostAndOnlyParticipant(t *testing.T) {
	room := newRoomWith(t, "A")

	assert.Equal(t, "c0", room.HostConnectionID)
	assert.Equal(t, []string{"A"}, room.Nicknames())
	assert.Equal(t, domain.PhaseLobby, room.Phase)
	assert.Equal(t, 0, room.TurnIndex)
}

func TestAddParticipant_NinthIsRejected(t *testing.T) {
	room := newRoomWith(t, "p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7")
	require.Len(t, room.Participants, domain.MaxParticipants)

	p, err := domain.NewParticipant("c8", "p8")
	require.NoError(t, err)
	err = room.AddParticipant(p)

	assert.ErrorIs(t, err, domain.ErrRoomFull)
	assert.Len(t, room.Participants, domain.MaxParticipants)
}

func TestAddParticipant_DuplicateNicknameIsCaseSensitive(t *testing.T) {
	room := newRoomWith(t, "Ann")

	dup, _ := domain.NewParticipant("c1", "Ann")
	assert.ErrorIs(t, room.AddParticipant(dup), domain.ErrDuplicateNickname)
	assert.Len(t, room.Participants, 1)

	other, _ := domain.NewParticipant("c1", "ann")
	assert.NoError(t, room.AddParticipant(other))
}

func TestAddParticipant_SameConnectionTwice(t *testing.T) {
	room := newRoomWith(t, "A")
	again, _ := domain.NewParticipant("c0", "B")
	assert.ErrorIs(t, room.AddParticipant(again), domain.ErrAlreadyInRoom)
}

func TestNewParticipant_RejectsBadNicknames(t *testing.T) {
	_, err := domain.NewParticipant("c0", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = domain.NewParticipant("c0", "tab\tname")
	assert.Error(t, err)

	_, err = domain.NewParticipant("", "A")
	assert.Error(t, err)

	_, err = domain.NewParticipant("c0", "피카츄")
	assert.NoError(t, err)
}

func TestRemoveParticipant_HostMigratesToFirstRemaining(t *testing.T) {
	room := newRoomWith(t, "A", "B", "C")

	removal, err := room.RemoveParticipant("c0")
	require.NoError(t, err)

	assert.True(t, removal.HostChanged)
	assert.Equal(t, "c1", removal.NewHost)
	assert.Equal(t, "c1", room.HostConnectionID)
	assert.False(t, removal.Deleted)
	assert.Equal(t, []string{"B", "C"}, room.Nicknames())
}

func TestRemoveParticipant_LastOneMarksDeleted(t *testing.T) {
	room := newRoomWith(t, "A")

	removal, err := room.RemoveParticipant("c0")
	require.NoError(t, err)

	assert.True(t, removal.Deleted)
	assert.False(t, removal.HostChanged)
	assert.True(t, room.IsEmpty())
}

func TestRemoveParticipant_UnknownConnection(t *testing.T) {
	room := newRoomWith(t, "A", "B")
	_, err := room.RemoveParticipant("nope")
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
	assert.Len(t, room.Participants, 2)
}

func TestRemoveParticipant_TurnIndexClamping(t *testing.T) {
	t.Run("before turn holder shifts index down", func(t *testing.T) {
		room := newRoomWith(t, "A", "B", "C")
		room.TurnIndex = 2
		_, err := room.RemoveParticipant("c0")
		require.NoError(t, err)
		assert.Equal(t, 1, room.TurnIndex)
		holder, ok := room.TurnHolder()
		require.True(t, ok)
		assert.Equal(t, "C", holder.Nickname)
	})

	t.Run("turn holder leaving passes turn to next", func(t *testing.T) {
		room := newRoomWith(t, "A", "B", "C")
		room.TurnIndex = 1
		removal, err := room.RemoveParticipant("c1")
		require.NoError(t, err)
		assert.True(t, removal.WasTurn)
		holder, _ := room.TurnHolder()
		assert.Equal(t, "C", holder.Nickname)
	})

	t.Run("last turn holder leaving wraps to zero", func(t *testing.T) {
		room := newRoomWith(t, "A", "B", "C")
		room.TurnIndex = 2
		_, err := room.RemoveParticipant("c2")
		require.NoError(t, err)
		assert.Equal(t, 0, room.TurnIndex)
	})

	t.Run("after turn holder keeps index", func(t *testing.T) {
		room := newRoomWith(t, "A", "B", "C")
		room.TurnIndex = 0
		_, err := room.RemoveParticipant("c2")
		require.NoError(t, err)
		assert.Equal(t, 0, room.TurnIndex)
	})
}

func TestSnapshot_IsACopy(t *testing.T) {
	room := newRoomWith(t, "A", "B")
	snap := room.Snapshot()
	snap[0].Score = 99
	assert.Equal(t, 0, room.Participants[0].Score)
}

// Property: after any sequence of removals the room keeps its invariants.
func TestProperty_RemovalKeepsInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, domain.MaxParticipants).Draw(rt, "n")
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("p%d", i)
		}
		room := newRoomWith(t, names...)
		room.TurnIndex = rapid.IntRange(0, n-1).Draw(rt, "turn")

		order := rapid.Permutation(room.ConnectionIDs()).Draw(rt, "order")
		for _, id := range order {
			removal, err := room.RemoveParticipant(id)
			if err != nil {
				rt.Fatalf("remove %s: %v", id, err)
			}
			if removal.Deleted {
				if !room.IsEmpty() {
					rt.Fatalf("deleted but %d participants remain", len(room.Participants))
				}
				return
			}
			if !room.IsParticipant(room.HostConnectionID) {
				rt.Fatalf("host %q is not a participant", room.HostConnectionID)
			}
			if room.TurnIndex < 0 || room.TurnIndex >= len(room.Participants) {
				rt.Fatalf("turn index %d out of range [0,%d)", room.TurnIndex, len(room.Participants))
			}
		}
	})
}

package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hanwool95/game-socket-server/internal/domain"
)

func TestAward_Table(t *testing.T) {
	cases := map[int]int{0: 400, 1: 400, 2: 300, 3: 300, 4: 200, 6: 100, 8: 0, 20: 0}
	for length, want := range cases {
		assert.Equal(t, want, domain.Award(strings.Repeat("x", length)), "hint length %d", length)
	}
}

func TestAward_CountsCharacters(t *testing.T) {
	assert.Equal(t, 300, domain.Award("전기"))
}

func TestProperty_AwardNonNegativeAndNonIncreasing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 64).Draw(rt, "a")
		b := rapid.IntRange(a, 64).Draw(rt, "b")
		short := domain.Award(strings.Repeat("h", a))
		long := domain.Award(strings.Repeat("h", b))
		if short < 0 || long < 0 {
			rt.Fatalf("negative award: %d %d", short, long)
		}
		if long > short {
			rt.Fatalf("award grew from %d to %d as hint grew %d -> %d", short, long, a, b)
		}
	})
}

func TestIsCloseGuess(t *testing.T) {
	assert.True(t, domain.IsCloseGuess("pikachi", "pikachu"))
	assert.True(t, domain.IsCloseGuess("pikach", "pikachu"))
	assert.False(t, domain.IsCloseGuess("pikachu", "pikachu"))
	assert.False(t, domain.IsCloseGuess("bulbasaur", "pikachu"))
	assert.False(t, domain.IsCloseGuess("a", ""))
}

func TestStartAndAdvance(t *testing.T) {
	room := newRoomWith(t, "A", "B", "C")
	room.Start(60, domain.Secret{DisplayName: "pikachu", MediaRef: "m1"})

	assert.Equal(t, domain.PhaseInProgress, room.Phase)
	assert.Equal(t, 60, room.RoundTimerSeconds)
	assert.Equal(t, 0, room.TurnIndex)
	assert.True(t, room.HasActiveRound())
	epoch := room.RoundEpoch

	room.AppendHint("el")
	room.Advance(domain.Secret{DisplayName: "eevee", MediaRef: "m2"})

	assert.Equal(t, 1, room.TurnIndex)
	assert.Empty(t, room.Hint)
	assert.Equal(t, "eevee", room.Secret.DisplayName)
	assert.Greater(t, room.RoundEpoch, epoch)
}

func TestAdvance_UsesParticipantCountAtCommit(t *testing.T) {
	room := newRoomWith(t, "A", "B", "C")
	room.Start(60, domain.Secret{DisplayName: "x", MediaRef: "m"})
	room.TurnIndex = 1

	_, _ = room.RemoveParticipant("c2")
	room.Advance(domain.Secret{DisplayName: "y", MediaRef: "m"})

	assert.Equal(t, 0, room.TurnIndex)
}

func TestEndRound_ClearsSecretButKeepsTurn(t *testing.T) {
	room := newRoomWith(t, "A", "B")
	room.Start(30, domain.Secret{DisplayName: "x", MediaRef: "m"})
	room.AppendHint("ab")

	secret := room.EndRound()

	assert.Equal(t, "x", secret.DisplayName)
	assert.False(t, room.HasActiveRound())
	assert.Empty(t, room.Hint)
	assert.Equal(t, 0, room.TurnIndex)
}

func TestCredit_BothGuesserAndSetter(t *testing.T) {
	room := newRoomWith(t, "A", "B")
	room.Start(60, domain.Secret{DisplayName: "x", MediaRef: "m"})

	room.Credit("c1", 200)

	assert.Equal(t, []domain.Score{{Nickname: "A", Score: 200}, {Nickname: "B", Score: 200}}, room.Scores())
}

func TestProperty_TurnRotationIsCyclic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, domain.MaxParticipants).Draw(rt, "n")
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('A' + i))
		}
		room := newRoomWith(t, names...)
		room.Start(60, domain.Secret{DisplayName: "x", MediaRef: "m"})

		steps := rapid.IntRange(0, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			before := room.TurnIndex
			room.Advance(domain.Secret{DisplayName: "x", MediaRef: "m"})
			if room.TurnIndex != (before+1)%n {
				rt.Fatalf("turn %d -> %d with %d participants", before, room.TurnIndex, n)
			}
		}
	})
}

func TestAdvance_AfterTurnHolderLeftDoesNotSkipNext(t *testing.T) {
	room := newRoomWith(t, "A", "B", "C")
	room.Start(60, domain.Secret{DisplayName: "x", MediaRef: "m"})
	room.TurnIndex = 1

	_, err := room.RemoveParticipant("c1")
	require.NoError(t, err)
	room.Advance(domain.Secret{DisplayName: "y", MediaRef: "m"})

	holder, ok := room.TurnHolder()
	require.True(t, ok)
	assert.Equal(t, "C", holder.Nickname)

	room.Advance(domain.Secret{DisplayName: "z", MediaRef: "m"})
	holder, _ = room.TurnHolder()
	assert.Equal(t, "A", holder.Nickname)
}

func TestBeginAdvance(t *testing.T) {
	room := newRoomWith(t, "A", "B")
	room.Start(60, domain.Secret{DisplayName: "x", MediaRef: "m"})

	ended, epoch := room.BeginAdvance()

	assert.Equal(t, "x", ended.DisplayName)
	assert.True(t, room.Advancing)
	assert.Equal(t, room.RoundEpoch, epoch)
	assert.False(t, room.HasActiveRound())

	room.AbortAdvance()
	assert.False(t, room.Advancing)
	assert.Equal(t, 0, room.TurnIndex)

	ended, _ = room.BeginAdvance()
	assert.True(t, ended.IsZero())
}

package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanwool95/game-socket-server/internal/application/game"
	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

func TestRoundDeadline_AdvancesExactlyOnce(t *testing.T) {
	f := newFixture(t)
	code := f.playing(t, "a", "b")

	armed := f.clock.active()
	require.Len(t, armed, 1)
	assert.Equal(t, 60*time.Second, armed[0].d)

	armed[0].fire()

	msgs := f.hub.take("a")
	require.Equal(t, []string{ws.GameMessage, ws.YourTurn, ws.SecretMedia}, typesOf(msgs))
	timeout := msgs[0].Data.(ws.GameMessagePayload)
	assert.Equal(t, "pikachu", timeout.Answer)
	assert.Equal(t, "B", msgs[1].Data)

	// A late second firing of the same deadline finds a newer round.
	armed[0].fire()
	assert.Empty(t, f.hub.take("a"))

	room := f.room(t, code)
	assert.Equal(t, 1, room.TurnIndex)
	assert.Equal(t, []string{domain.RoundEndTimeout}, f.observer.roundsEnded)
	assert.Len(t, f.clock.active(), 1)
}

func TestRoundDeadline_StoppedByCorrectGuess(t *testing.T) {
	f := newFixture(t)
	code := f.playing(t, "a", "b")
	first := f.clock.active()[0]

	require.NoError(t, f.coord.SubmitGuess(context.Background(), "b", code, "pikachu"))

	assert.True(t, first.stopped)
	require.Len(t, f.clock.active(), 1)
	assert.Equal(t, 2, f.clock.count())
}

func TestRoundDeadline_Disabled(t *testing.T) {
	f := newFixture(t, withConfig(func(c *game.Config) {
		c.EnforceRoundTimer = false
	}))
	f.playing(t, "a", "b")

	assert.Equal(t, 0, f.clock.count())
}

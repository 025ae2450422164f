package game_test

import (
	"context"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/hanwool95/game-socket-server/internal/domain"
)

func TestProperty_RandomPlayKeepsRoomsConsistent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t)
		ctx := context.Background()
		ids := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(ids).Draw(rt, "id")
			code, inRoom := f.rooms.RoomOf(id)

			switch rapid.IntRange(0, 7).Draw(rt, "op") {
			case 0:
				_ = f.coord.CreateRoom(ctx, id, nick(id))
			case 1:
				codes := f.rooms.Codes()
				if len(codes) > 0 {
					target := rapid.SampledFrom(codes).Draw(rt, "room")
					_ = f.coord.JoinRoom(ctx, id, target, nick(id))
				}
			case 2:
				f.coord.Disconnect(ctx, id)
			case 3:
				if inRoom {
					_ = f.coord.StartGame(ctx, id, code, 30)
				}
			case 4:
				if inRoom {
					guess := "nope"
					if room, err := f.rooms.GetByCode(ctx, code); err == nil && rapid.Bool().Draw(rt, "correct") {
						guess = room.Secret.DisplayName
					}
					_ = f.coord.SubmitGuess(ctx, id, code, guess)
				}
			case 5:
				if inRoom {
					_ = f.coord.SkipRound(ctx, id, code)
				}
			case 6:
				if inRoom {
					_ = f.coord.AddHint(ctx, id, code, "ab")
				}
			case 7:
				f.provider.setFail(rapid.Bool().Draw(rt, "fail"))
			}

			if err := checkRooms(ctx, f); err != nil {
				rt.Fatalf("after step %d: %v", i, err)
			}
		}
	})
}

func checkRooms(ctx context.Context, f *fixture) error {
	seen := make(map[string]string)
	for _, code := range f.rooms.Codes() {
		room, err := f.rooms.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		n := len(room.Participants)
		if n == 0 || n > domain.MaxParticipants {
			return fmt.Errorf("room %s has %d participants", code, n)
		}
		if !room.IsParticipant(room.HostConnectionID) {
			return fmt.Errorf("room %s host %q is not a participant", code, room.HostConnectionID)
		}
		if room.Advancing {
			return fmt.Errorf("room %s left advancing with no fetch outstanding", code)
		}
		if room.Phase == domain.PhaseInProgress && (room.TurnIndex < 0 || room.TurnIndex >= n) {
			return fmt.Errorf("room %s turn index %d out of range", code, room.TurnIndex)
		}

		names := make(map[string]bool)
		for _, p := range room.Participants {
			if names[p.Nickname] {
				return fmt.Errorf("room %s duplicate nickname %q", code, p.Nickname)
			}
			names[p.Nickname] = true
			if other, dup := seen[p.ConnectionID]; dup {
				return fmt.Errorf("%s is in rooms %s and %s", p.ConnectionID, other, code)
			}
			seen[p.ConnectionID] = code
			if indexed, ok := f.rooms.RoomOf(p.ConnectionID); !ok || indexed != code {
				return fmt.Errorf("%s indexed to %q, sits in %s", p.ConnectionID, indexed, code)
			}
			if p.Score < 0 {
				return fmt.Errorf("%s has negative score", p.ConnectionID)
			}
		}
	}
	return nil
}

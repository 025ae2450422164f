package game

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

var errStale = errors.New("room changed while suspended")

// continuation identifies the room state a suspended operation expects to
// find when it resumes. Codes are reused after a room is deleted, so the
// room itself is compared too.
type continuation struct {
	code  string
	epoch uint64
	room  *domain.Room
}

func resumeFrom(room *domain.Room) continuation {
	return continuation{code: room.Code, epoch: room.RoundEpoch, room: room}
}

func (k continuation) matches(room *domain.Room) bool {
	return room == k.room && room.RoundEpoch == k.epoch
}

// SubmitGuess checks a guess against the current secret. The turn holder and
// non-participants are ignored. A correct guess scores for both the guesser
// and the turn holder and moves the game to the next turn.
func (c *Coordinator) SubmitGuess(ctx context.Context, connectionID, code, guess string) error {
	var (
		next    continuation
		advance bool
	)
	err := c.rooms.WithRoom(ctx, code, func(room *domain.Room) error {
		guesser, ok := room.Participant(connectionID)
		if !ok {
			return nil
		}
		if room.Phase != domain.PhaseInProgress {
			return domain.ErrGameNotStarted
		}
		if holder, ok := room.TurnHolder(); ok && holder.ConnectionID == connectionID {
			return nil
		}
		if !room.HasActiveRound() {
			return domain.ErrNoActiveRound
		}

		answer := room.Secret.DisplayName
		if guess != answer {
			isClose := domain.IsCloseGuess(guess, answer)
			c.hub.SendTo(connectionID, ws.NewWrongGuess(room.Code, isClose))
			c.observer.OnGuess(room.Code, false, isClose)
			return nil
		}

		award := domain.Award(room.Hint)
		room.Credit(connectionID, award)
		room.BeginAdvance()
		c.timers.stop(room.Code)

		c.hub.BroadcastToRoom(room.Code, ws.NewGameMessage(room.Code, ws.GameMessagePayload{
			Message: correctGuessMessage(guesser.Nickname, answer, award),
			Answer:  answer,
			Guesser: guesser.Nickname,
			Award:   award,
		}))
		c.hub.BroadcastToRoom(room.Code, ws.NewUpdateScores(room.Code, room.Scores()))
		c.observer.OnGuess(room.Code, true, false)
		c.observer.OnRoundEnded(room.Code, answer, domain.RoundEndGuessed, award)

		next, advance = resumeFrom(room), true
		return nil
	})
	if err != nil {
		return err
	}
	if advance {
		c.advance(ctx, next)
	}
	return nil
}

// SkipRound reveals the answer and moves to the next turn without scoring.
// After a failed fetch there is no round to reveal; skipping retries the
// advance.
func (c *Coordinator) SkipRound(ctx context.Context, connectionID, code string) error {
	var (
		next    continuation
		advance bool
	)
	err := c.rooms.WithRoom(ctx, code, func(room *domain.Room) error {
		if !room.IsParticipant(connectionID) {
			return nil
		}
		if room.Phase != domain.PhaseInProgress {
			return domain.ErrGameNotStarted
		}
		if room.Advancing {
			return domain.ErrNoActiveRound
		}
		next, advance = c.endRound(room, domain.RoundEndSkipped), true
		return nil
	})
	if err != nil {
		return err
	}
	if advance {
		c.advance(ctx, next)
	}
	return nil
}

// AddHint appends to the round's hint and shows the full hint to the room.
// The hint is then recorded in the background; a failed write is only
// logged.
func (c *Coordinator) AddHint(ctx context.Context, connectionID, code, fragment string) error {
	var secretName, hint string
	err := c.rooms.WithRoom(ctx, code, func(room *domain.Room) error {
		if !room.IsParticipant(connectionID) {
			return nil
		}
		if room.Phase != domain.PhaseInProgress {
			return domain.ErrGameNotStarted
		}
		if !room.HasActiveRound() {
			return domain.ErrNoActiveRound
		}

		hint = room.AppendHint(fragment)
		secretName = room.Secret.DisplayName
		c.hub.BroadcastToRoom(room.Code, ws.NewAddHint(room.Code, hint))
		c.observer.OnHintAdded(room.Code, utf8.RuneCountInString(hint))
		return nil
	})
	if err != nil || hint == "" {
		return err
	}

	c.recordHint(ctx, code, secretName, hint)
	return nil
}

func (c *Coordinator) recordHint(ctx context.Context, code, secretName, hint string) {
	if c.hints == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	c.background(func() {
		ctx, cancel := context.WithTimeout(ctx, c.cfg.HintStoreTimeout)
		defer cancel()

		if err := c.hints.RecordHint(ctx, secretName, hint); err != nil {
			c.logger.Warn(logging.Persistence, logging.Insert, "hint not recorded", map[logging.ExtraKey]any{
				logging.RoomCode:     code,
				logging.ErrorMessage: err.Error(),
			})
		}
	})
}

// endRound closes the active round, if any, announces the answer and marks
// the room as advancing. The room must be locked.
func (c *Coordinator) endRound(room *domain.Room, reason string) continuation {
	ended, _ := room.BeginAdvance()
	c.timers.stop(room.Code)

	if !ended.IsZero() {
		c.hub.BroadcastToRoom(room.Code, ws.NewGameMessage(room.Code, ws.GameMessagePayload{
			Message: roundEndMessage(reason),
			Answer:  ended.DisplayName,
		}))
		c.observer.OnRoundEnded(room.Code, ended.DisplayName, reason, 0)
	}
	return resumeFrom(room)
}

// advance fetches the next secret and commits the next turn. The turn index
// is computed when the commit happens, against whoever is still in the room.
func (c *Coordinator) advance(ctx context.Context, k continuation) {
	ctx, span := c.tracer.Start(ctx, "game.Advance", trace.WithAttributes(
		attribute.String("room.code", k.code),
		attribute.Int64("round.epoch", int64(k.epoch)),
	))
	defer span.End()

	secret, fetchErr := c.fetchSecret(ctx, k.code)

	err := c.rooms.WithRoom(context.WithoutCancel(ctx), k.code, func(room *domain.Room) error {
		if !k.matches(room) || !room.Advancing {
			return errStale
		}
		if fetchErr != nil {
			room.AbortAdvance()
			c.hub.BroadcastToRoom(room.Code, ws.NewError(msgSecretUnavailable))
			return nil
		}

		room.Advance(secret)
		c.emitRoundStart(room)
		return nil
	})
	c.logStale(k, err)
}

func (c *Coordinator) fetchSecret(ctx context.Context, code string) (domain.Secret, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.SecretFetchTimeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "game.FetchSecret", trace.WithAttributes(
		attribute.String("room.code", code),
	))
	defer span.End()

	secret, err := c.secrets.FetchRandomSecret(ctx)
	if err == nil && secret.IsZero() {
		err = domain.ErrSecretUnavailable
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error(logging.Provider, logging.SecretFetch, "secret fetch failed", map[logging.ExtraKey]any{
			logging.RoomCode:     code,
			logging.ErrorMessage: err.Error(),
		})
		return domain.Secret{}, err
	}
	return secret, nil
}

// emitRoundStart announces the committed round. Everyone gets the media;
// only the turn holder gets the name. The room must be locked.
func (c *Coordinator) emitRoundStart(room *domain.Room) {
	holder, ok := room.TurnHolder()
	if !ok {
		return
	}
	timer := room.RoundTimerSeconds

	c.hub.BroadcastToRoom(room.Code, ws.NewYourTurn(room.Code, holder.Nickname))
	c.hub.BroadcastToRoom(room.Code, ws.NewSecretMedia(room.Code, room.Secret.MediaRef, timer))
	c.hub.SendTo(holder.ConnectionID, ws.NewSecretReveal(room.Code, room.Secret, timer))
	c.observer.OnRoundStarted(room.Code, holder.Nickname, room.RoundEpoch)

	if c.cfg.EnforceRoundTimer && timer > 0 {
		k := resumeFrom(room)
		c.timers.arm(room.Code, time.Duration(timer)*time.Second, func() {
			c.onRoundDeadline(k)
		})
	}
}

// onRoundDeadline ends a round nobody guessed in time. A deadline that
// fires after the round already ended finds a different epoch and does
// nothing.
func (c *Coordinator) onRoundDeadline(k continuation) {
	ctx := context.Background()

	var (
		next    continuation
		advance bool
	)
	err := c.rooms.WithRoom(ctx, k.code, func(room *domain.Room) error {
		if !k.matches(room) || !room.HasActiveRound() {
			return errStale
		}
		c.logger.Info(logging.Game, logging.TimerExpired, "round timed out", map[logging.ExtraKey]any{
			logging.RoomCode:   room.Code,
			logging.RoundEpoch: room.RoundEpoch,
		})
		next, advance = c.endRound(room, domain.RoundEndTimeout), true
		return nil
	})
	if err != nil {
		c.logStale(k, err)
		return
	}
	if advance {
		c.advance(ctx, next)
	}
}

func (c *Coordinator) logStale(k continuation, err error) {
	if err == nil {
		return
	}
	c.logger.Debug(logging.Game, logging.StaleResume, "dropped stale continuation", map[logging.ExtraKey]any{
		logging.RoomCode:     k.code,
		logging.RoundEpoch:   k.epoch,
		logging.ErrorMessage: err.Error(),
	})
}

package domain

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	MaxAward          = 400
	AwardStep         = 100
	HintCharsPerStep  = 2
	CloseGuessMaxDist = 2
)

type Secret struct {
	DisplayName string `json:"displayName"`
	MediaRef    string `json:"mediaRef"`
}

func (s Secret) IsZero() bool {
	return s.DisplayName == "" && s.MediaRef == ""
}

// Award is the number of points a correct guess is worth given the hint
// revealed so far. Every two hint characters cost one step; it never goes
// below zero.
func Award(hint string) int {
	award := MaxAward - (utf8.RuneCountInString(hint)/HintCharsPerStep)*AwardStep
	if award < 0 {
		return 0
	}
	return award
}

// IsCloseGuess reports a wrong guess that is within a couple of edits of the
// answer.
func IsCloseGuess(guess, answer string) bool {
	if guess == answer || answer == "" {
		return false
	}
	return levenshtein.ComputeDistance(guess, answer) <= CloseGuessMaxDist
}

func (r *Room) HasActiveRound() bool {
	return r.Phase == PhaseInProgress && !r.Advancing && !r.Secret.IsZero()
}

// Start moves the room out of the lobby with the first secret. The first
// participant takes the first turn.
func (r *Room) Start(timerSeconds int, secret Secret) {
	r.Phase = PhaseInProgress
	r.RoundTimerSeconds = timerSeconds
	r.TurnIndex = 0
	r.beginRound(secret)
}

// Advance commits the next round. The turn index is computed against the
// participant list as it is now, not as it was when the fetch started.
func (r *Room) Advance(secret Secret) {
	if len(r.Participants) > 0 && !r.TurnVacated {
		r.TurnIndex = (r.TurnIndex + 1) % len(r.Participants)
	}
	r.beginRound(secret)
}

// EndRound clears the active secret. The turn stays put until Advance.
func (r *Room) EndRound() Secret {
	secret := r.Secret
	r.Secret = Secret{}
	r.Hint = ""
	r.RoundEpoch++
	return secret
}

// BeginAdvance ends the active round, if any, and marks the room as waiting
// for the next secret. It returns the ended secret and the epoch the commit
// must still see.
func (r *Room) BeginAdvance() (Secret, uint64) {
	ended := Secret{}
	if !r.Secret.IsZero() {
		ended = r.EndRound()
	}
	r.Advancing = true
	return ended, r.RoundEpoch
}

// AbortAdvance gives up on a pending advance. The turn does not move.
func (r *Room) AbortAdvance() {
	r.Advancing = false
}

func (r *Room) beginRound(secret Secret) {
	r.Secret = secret
	r.Hint = ""
	r.Advancing = false
	r.TurnVacated = false
	r.RoundEpoch++
}

func (r *Room) AppendHint(fragment string) string {
	r.Hint += fragment
	return r.Hint
}

// Credit adds award to both the guesser and the current turn holder.
func (r *Room) Credit(guesserID string, award int) {
	guesser := r.IndexOf(guesserID)
	if guesser >= 0 {
		r.Participants[guesser].Score += award
	}
	if r.TurnIndex >= 0 && r.TurnIndex < len(r.Participants) && r.TurnIndex != guesser {
		r.Participants[r.TurnIndex].Score += award
	}
}

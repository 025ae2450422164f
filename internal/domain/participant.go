package domain

import (
	"fmt"

	"github.com/hanwool95/game-socket-server/internal/infrastructure/validate"
)

const (
	nicknameMaxLength = 16
)

type Participant struct {
	ConnectionID string `json:"connectionId"`
	Nickname     string `json:"nickname"`
	Score        int    `json:"score"`
}

type Score struct {
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
}

var validateNickname = validate.Field("nickname",
	validate.Required(),
	validate.MaxLength(nicknameMaxLength),
	validate.NoControlChars(),
)

// NewParticipant validates the nickname. Nicknames are compared as given,
// so "Ann" and "ann" are different players.
func NewParticipant(connectionID, nickname string) (Participant, error) {
	if connectionID == "" {
		return Participant{}, ErrParticipantNotFound
	}
	if err := validateNickname(nickname); err != nil {
		return Participant{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return Participant{
		ConnectionID: connectionID,
		Nickname:     nickname,
	}, nil
}

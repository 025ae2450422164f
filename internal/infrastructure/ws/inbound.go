package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hanwool95/game-socket-server/internal/infrastructure/validate"
)

var (
	ErrMalformedFrame = errors.New("malformed frame")
	ErrUnknownEvent   = errors.New("unknown event")
)

// Inbound is the frame every client message arrives in.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Command is one decoded and validated inbound event.
type Command interface {
	Event() string
}

type CreateRoomCommand struct {
	Nickname string `json:"nickname"`
}

type JoinRoomCommand struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

type StartGameCommand struct {
	RoomCode     string `json:"roomCode"`
	TimerSeconds int    `json:"timerSeconds"`
}

type SubmitGuessCommand struct {
	RoomCode string `json:"roomCode"`
	Guess    string `json:"guess"`
}

type SkipRoundCommand struct {
	RoomCode string `json:"roomCode"`
}

type AddHintCommand struct {
	RoomCode     string `json:"roomCode"`
	HintFragment string `json:"hintFragment"`
}

// ChatCommand keeps the client supplied nickname for wire compatibility; the
// sender shown to the room is the participant's registered nickname.
type ChatCommand struct {
	RoomCode string `json:"roomCode"`
	Message  string `json:"message"`
	Nickname string `json:"nickname,omitempty"`
}

type LeaveRoomCommand struct {
	RoomCode string `json:"roomCode"`
}

func (CreateRoomCommand) Event() string  { return CreateRoomEvent }
func (JoinRoomCommand) Event() string    { return JoinRoomEvent }
func (StartGameCommand) Event() string   { return StartGameEvent }
func (SubmitGuessCommand) Event() string { return SubmitGuessEvent }
func (SkipRoundCommand) Event() string   { return SkipRoundEvent }
func (AddHintCommand) Event() string     { return AddHintEvent }
func (ChatCommand) Event() string        { return ChatEvent }
func (LeaveRoomCommand) Event() string   { return LeaveRoomEvent }

type Limits struct {
	MaxGuessLength int
	MaxHintLength  int
	MaxChatLength  int
}

func DefaultLimits() Limits {
	return Limits{MaxGuessLength: 64, MaxHintLength: 64, MaxChatLength: 500}
}

type Decoder struct {
	roomCode validate.Validator
	nickname validate.Validator
	guess    validate.Validator
	hint     validate.Validator
	chat     validate.Validator
}

func NewDecoder(limits Limits) *Decoder {
	return &Decoder{
		roomCode: validate.Field("roomCode", validate.Required(), validate.Length(5), validate.Alphanumeric()),
		nickname: validate.Field("nickname", validate.Required()),
		guess:    validate.Field("guess", validate.Required(), validate.MaxLength(limits.MaxGuessLength)),
		hint: validate.Field("hintFragment",
			validate.Required(),
			validate.MaxLength(limits.MaxHintLength),
			validate.NoControlChars(),
		),
		chat: validate.Field("message", validate.Required(), validate.MaxLength(limits.MaxChatLength)),
	}
}

// Decode parses a raw frame into a Command. Unknown fields and unknown
// events are rejected.
func (d *Decoder) Decode(raw []byte) (Command, error) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch in.Type {
	case CreateRoomEvent:
		var cmd CreateRoomCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		return finish(cmd, d.nickname(cmd.Nickname))
	case JoinRoomEvent:
		var cmd JoinRoomCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		return finish(cmd, errors.Join(d.roomCode(cmd.RoomCode), d.nickname(cmd.Nickname)))
	case StartGameEvent:
		var cmd StartGameCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		var timerErr error
		if cmd.TimerSeconds < 0 {
			timerErr = errors.New("timerSeconds: must not be negative")
		}
		return finish(cmd, errors.Join(d.roomCode(cmd.RoomCode), timerErr))
	case SubmitGuessEvent:
		var cmd SubmitGuessCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		return finish(cmd, errors.Join(d.roomCode(cmd.RoomCode), d.guess(cmd.Guess)))
	case SkipRoundEvent:
		var cmd SkipRoundCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		return finish(cmd, d.roomCode(cmd.RoomCode))
	case AddHintEvent:
		var cmd AddHintCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		return finish(cmd, errors.Join(d.roomCode(cmd.RoomCode), d.hint(cmd.HintFragment)))
	case ChatEvent:
		var cmd ChatCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		return finish(cmd, errors.Join(d.roomCode(cmd.RoomCode), d.chat(cmd.Message)))
	case LeaveRoomEvent:
		var cmd LeaveRoomCommand
		if err := decodeData(in.Data, &cmd); err != nil {
			return nil, err
		}
		return finish(cmd, d.roomCode(cmd.RoomCode))
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformedFrame)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, in.Type)
	}
}

func finish(cmd Command, err error) (Command, error) {
	if err != nil {
		return nil, err
	}
	return cmd, nil
}

func decodeData(data json.RawMessage, target any) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: missing data", ErrMalformedFrame)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	return nil
}

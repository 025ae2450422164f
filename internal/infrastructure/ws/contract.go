package ws

import "github.com/hanwool95/game-socket-server/internal/domain"

type WSMessage struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode,omitempty"`
	Data     any    `json:"data"`
}

// Payload structs
type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
}

type GameStartedPayload struct {
	Scores []domain.Score `json:"scores"`
	Timer  int            `json:"timer"`
}

type SecretMediaPayload struct {
	MediaRef    string `json:"mediaRef"`
	DisplayName string `json:"displayName,omitempty"`
	Timer       int    `json:"timer"`
}

type HintPayload struct {
	Hint string `json:"hint"`
}

type GameMessagePayload struct {
	Message string `json:"message"`
	Answer  string `json:"answer,omitempty"`
	Guesser string `json:"guesser,omitempty"`
	Award   int    `json:"award,omitempty"`
}

type WrongGuessPayload struct {
	Close bool `json:"close"`
}

type ChatPayload struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

func NewConnected(connectionID string) *WSMessage {
	return &WSMessage{
		Type: Connected,
		Data: ConnectedPayload{ConnectionID: connectionID},
	}
}

func NewRoomCreated(code string) *WSMessage {
	return &WSMessage{Type: RoomCreated, RoomCode: code, Data: code}
}

func NewJoinedRoom(code string) *WSMessage {
	return &WSMessage{Type: JoinedRoom, RoomCode: code, Data: code}
}

func NewUpdateUsers(code string, nicknames []string) *WSMessage {
	if nicknames == nil {
		nicknames = []string{}
	}
	return &WSMessage{Type: UpdateUsers, RoomCode: code, Data: nicknames}
}

func NewNewHost(code, connectionID string) *WSMessage {
	return &WSMessage{Type: NewHost, RoomCode: code, Data: connectionID}
}

func NewGameStarted(code string, scores []domain.Score, timer int) *WSMessage {
	return &WSMessage{
		Type:     GameStarted,
		RoomCode: code,
		Data:     GameStartedPayload{Scores: scores, Timer: timer},
	}
}

func NewYourTurn(code, nickname string) *WSMessage {
	return &WSMessage{Type: YourTurn, RoomCode: code, Data: nickname}
}

// NewSecretMedia carries only the media reference. Use NewSecretReveal for
// the turn holder, who needs the name to give hints.
func NewSecretMedia(code, mediaRef string, timer int) *WSMessage {
	return &WSMessage{
		Type:     SecretMedia,
		RoomCode: code,
		Data:     SecretMediaPayload{MediaRef: mediaRef, Timer: timer},
	}
}

func NewSecretReveal(code string, secret domain.Secret, timer int) *WSMessage {
	return &WSMessage{
		Type:     SecretMedia,
		RoomCode: code,
		Data: SecretMediaPayload{
			MediaRef:    secret.MediaRef,
			DisplayName: secret.DisplayName,
			Timer:       timer,
		},
	}
}

func NewAddHint(code, hint string) *WSMessage {
	return &WSMessage{Type: AddHint, RoomCode: code, Data: HintPayload{Hint: hint}}
}

func NewGameMessage(code string, payload GameMessagePayload) *WSMessage {
	return &WSMessage{Type: GameMessage, RoomCode: code, Data: payload}
}

func NewUpdateScores(code string, scores []domain.Score) *WSMessage {
	if scores == nil {
		scores = []domain.Score{}
	}
	return &WSMessage{Type: UpdateScores, RoomCode: code, Data: scores}
}

func NewWrongGuess(code string, isClose bool) *WSMessage {
	return &WSMessage{Type: WrongGuess, RoomCode: code, Data: WrongGuessPayload{Close: isClose}}
}

func NewChat(code, sender, message string) *WSMessage {
	return &WSMessage{
		Type:     Chat,
		RoomCode: code,
		Data:     ChatPayload{Sender: sender, Message: message},
	}
}

func NewError(message string) *WSMessage {
	return &WSMessage{Type: ErrorEvent, Data: message}
}

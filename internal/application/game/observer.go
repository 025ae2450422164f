package game

import (
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
)

// Observer receives lifecycle notifications. Calls can happen while a room
// is locked, so implementations must return quickly and never call back
// into the Coordinator.
type Observer interface {
	OnConnect(connectionID string)
	OnDisconnect(connectionID string)
	OnRoomCreated(code, hostNickname string)
	OnRoomDeleted(code string)
	OnPlayerJoined(code, nickname string, players int)
	OnPlayerLeft(code, nickname string, players int, wasHost bool)
	OnHostChanged(code, newHost string)
	OnRoomFullRejected(code string)
	OnGameStarted(code string, timerSeconds, players int)
	OnRoundStarted(code, turnHolder string, epoch uint64)
	OnRoundEnded(code, answer, reason string, award int)
	OnGuess(code string, correct, isClose bool)
	OnHintAdded(code string, hintLength int)
	OnClientError(connectionID, event string, err error)
}

// Observers fans every notification out to each member in order.
type Observers []Observer

func (o Observers) OnConnect(connectionID string) {
	for _, ob := range o {
		ob.OnConnect(connectionID)
	}
}

func (o Observers) OnDisconnect(connectionID string) {
	for _, ob := range o {
		ob.OnDisconnect(connectionID)
	}
}

func (o Observers) OnRoomCreated(code, hostNickname string) {
	for _, ob := range o {
		ob.OnRoomCreated(code, hostNickname)
	}
}

func (o Observers) OnRoomDeleted(code string) {
	for _, ob := range o {
		ob.OnRoomDeleted(code)
	}
}

func (o Observers) OnPlayerJoined(code, nickname string, players int) {
	for _, ob := range o {
		ob.OnPlayerJoined(code, nickname, players)
	}
}

func (o Observers) OnPlayerLeft(code, nickname string, players int, wasHost bool) {
	for _, ob := range o {
		ob.OnPlayerLeft(code, nickname, players, wasHost)
	}
}

func (o Observers) OnHostChanged(code, newHost string) {
	for _, ob := range o {
		ob.OnHostChanged(code, newHost)
	}
}

func (o Observers) OnRoomFullRejected(code string) {
	for _, ob := range o {
		ob.OnRoomFullRejected(code)
	}
}

func (o Observers) OnGameStarted(code string, timerSeconds, players int) {
	for _, ob := range o {
		ob.OnGameStarted(code, timerSeconds, players)
	}
}

func (o Observers) OnRoundStarted(code, turnHolder string, epoch uint64) {
	for _, ob := range o {
		ob.OnRoundStarted(code, turnHolder, epoch)
	}
}

func (o Observers) OnRoundEnded(code, answer, reason string, award int) {
	for _, ob := range o {
		ob.OnRoundEnded(code, answer, reason, award)
	}
}

func (o Observers) OnGuess(code string, correct, isClose bool) {
	for _, ob := range o {
		ob.OnGuess(code, correct, isClose)
	}
}

func (o Observers) OnHintAdded(code string, hintLength int) {
	for _, ob := range o {
		ob.OnHintAdded(code, hintLength)
	}
}

func (o Observers) OnClientError(connectionID, event string, err error) {
	for _, ob := range o {
		ob.OnClientError(connectionID, event, err)
	}
}

// NopObserver ignores everything. Embed it to implement only some hooks.
type NopObserver struct{}

func (NopObserver) OnConnect(string)                         {}
func (NopObserver) OnDisconnect(string)                      {}
func (NopObserver) OnRoomCreated(string, string)             {}
func (NopObserver) OnRoomDeleted(string)                     {}
func (NopObserver) OnPlayerJoined(string, string, int)       {}
func (NopObserver) OnPlayerLeft(string, string, int, bool)   {}
func (NopObserver) OnHostChanged(string, string)             {}
func (NopObserver) OnRoomFullRejected(string)                {}
func (NopObserver) OnGameStarted(string, int, int)           {}
func (NopObserver) OnRoundStarted(string, string, uint64)    {}
func (NopObserver) OnRoundEnded(string, string, string, int) {}
func (NopObserver) OnGuess(string, bool, bool)               {}
func (NopObserver) OnHintAdded(string, int)                  {}
func (NopObserver) OnClientError(string, string, error)      {}

// LogObserver writes each notification as a structured log line.
type LogObserver struct {
	logger logging.Logger
}

func NewLogObserver(logger logging.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (l *LogObserver) OnConnect(connectionID string) {
	l.logger.Info(logging.Connection, logging.Connected, "client connected", map[logging.ExtraKey]any{
		logging.ConnectionID: connectionID,
	})
}

func (l *LogObserver) OnDisconnect(connectionID string) {
	l.logger.Info(logging.Connection, logging.Disconnected, "client disconnected", map[logging.ExtraKey]any{
		logging.ConnectionID: connectionID,
	})
}

func (l *LogObserver) OnRoomCreated(code, hostNickname string) {
	l.logger.Info(logging.Game, logging.RoomCreated, "room created", map[logging.ExtraKey]any{
		logging.RoomCode: code,
		logging.Nickname: hostNickname,
	})
}

func (l *LogObserver) OnRoomDeleted(code string) {
	l.logger.Info(logging.Game, logging.RoomDeleted, "room deleted", map[logging.ExtraKey]any{
		logging.RoomCode: code,
	})
}

func (l *LogObserver) OnPlayerJoined(code, nickname string, players int) {
	l.logger.Info(logging.Game, logging.PlayerJoined, "player joined", map[logging.ExtraKey]any{
		logging.RoomCode: code,
		logging.Nickname: nickname,
		logging.Players:  players,
	})
}

func (l *LogObserver) OnPlayerLeft(code, nickname string, players int, wasHost bool) {
	l.logger.Info(logging.Game, logging.PlayerLeft, "player left", map[logging.ExtraKey]any{
		logging.RoomCode: code,
		logging.Nickname: nickname,
		logging.Players:  players,
		logging.WasHost:  wasHost,
	})
}

func (l *LogObserver) OnHostChanged(code, newHost string) {
	l.logger.Info(logging.Game, logging.HostChanged, "host changed", map[logging.ExtraKey]any{
		logging.RoomCode:     code,
		logging.ConnectionID: newHost,
	})
}

func (l *LogObserver) OnRoomFullRejected(code string) {
	l.logger.Warn(logging.Game, logging.ClientError, "join rejected, room full", map[logging.ExtraKey]any{
		logging.RoomCode: code,
	})
}

func (l *LogObserver) OnGameStarted(code string, timerSeconds, players int) {
	l.logger.Info(logging.Game, logging.GameStarted, "game started", map[logging.ExtraKey]any{
		logging.RoomCode: code,
		logging.Timer:    timerSeconds,
		logging.Players:  players,
	})
}

func (l *LogObserver) OnRoundStarted(code, turnHolder string, epoch uint64) {
	l.logger.Info(logging.Game, logging.RoundStarted, "round started", map[logging.ExtraKey]any{
		logging.RoomCode:   code,
		logging.Nickname:   turnHolder,
		logging.RoundEpoch: epoch,
	})
}

func (l *LogObserver) OnRoundEnded(code, answer, reason string, award int) {
	l.logger.Info(logging.Game, logging.RoundEnded, "round ended", map[logging.ExtraKey]any{
		logging.RoomCode: code,
		logging.Answer:   answer,
		logging.Reason:   reason,
		logging.Award:    award,
	})
}

func (l *LogObserver) OnGuess(code string, correct, isClose bool) {
	l.logger.Debug(logging.Game, logging.GuessSubmitted, "guess", map[logging.ExtraKey]any{
		logging.RoomCode: code,
		logging.Correct:  correct,
		logging.Close:    isClose,
	})
}

func (l *LogObserver) OnHintAdded(code string, hintLength int) {
	l.logger.Debug(logging.Game, logging.HintAdded, "hint added", map[logging.ExtraKey]any{
		logging.RoomCode:   code,
		logging.HintLength: hintLength,
	})
}

func (l *LogObserver) OnClientError(connectionID, event string, err error) {
	l.logger.Warn(logging.Game, logging.ClientError, err.Error(), map[logging.ExtraKey]any{
		logging.ConnectionID: connectionID,
		logging.EventType:    event,
	})
}

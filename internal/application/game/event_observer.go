package game

import "github.com/hanwool95/game-socket-server/internal/domain"

// EventSink accepts audit events. Emit must not block.
type EventSink interface {
	Emit(event *domain.GameEvent)
}

// EventObserver turns room lifecycle notifications into domain.GameEvents.
// Connection, guess and hint notifications are too chatty for the audit log
// and are ignored.
type EventObserver struct {
	NopObserver
	sink EventSink
}

func NewEventObserver(sink EventSink) *EventObserver {
	return &EventObserver{sink: sink}
}

func (o *EventObserver) OnRoomCreated(code, hostNickname string) {
	o.sink.Emit(domain.NewRoomCreatedEvent(code, hostNickname))
}

func (o *EventObserver) OnRoomDeleted(code string) {
	o.sink.Emit(domain.NewRoomDeletedEvent(code))
}

func (o *EventObserver) OnPlayerJoined(code, nickname string, players int) {
	o.sink.Emit(domain.NewPlayerJoinedEvent(code, nickname, players))
}

func (o *EventObserver) OnPlayerLeft(code, nickname string, players int, wasHost bool) {
	o.sink.Emit(domain.NewPlayerLeftEvent(code, nickname, players, wasHost))
}

func (o *EventObserver) OnHostChanged(code, newHost string) {
	o.sink.Emit(domain.NewHostChangedEvent(code, newHost))
}

func (o *EventObserver) OnRoomFullRejected(code string) {
	o.sink.Emit(domain.NewRoomFullRejectedEvent(code))
}

func (o *EventObserver) OnGameStarted(code string, timerSeconds, players int) {
	o.sink.Emit(domain.NewGameStartedEvent(code, timerSeconds, players))
}

func (o *EventObserver) OnRoundStarted(code, turnHolder string, epoch uint64) {
	o.sink.Emit(domain.NewRoundStartedEvent(code, turnHolder, epoch))
}

func (o *EventObserver) OnRoundEnded(code, answer, reason string, award int) {
	o.sink.Emit(domain.NewRoundEndedEvent(code, answer, reason, award))
}

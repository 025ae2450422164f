package metrics

import "github.com/hanwool95/game-socket-server/internal/domain"

func (m *Metrics) OnConnect(string) {
	m.connections.Inc()
}

func (m *Metrics) OnDisconnect(string) {
	m.connections.Dec()
}

func (m *Metrics) OnRoomCreated(code, _ string) {
	m.rooms.Inc()
	m.players.WithLabelValues(code).Set(1)
}

func (m *Metrics) OnRoomDeleted(code string) {
	m.rooms.Dec()
	m.players.DeleteLabelValues(code)
}

func (m *Metrics) OnPlayerJoined(code, _ string, players int) {
	m.players.WithLabelValues(code).Set(float64(players))
}

func (m *Metrics) OnPlayerLeft(code, _ string, players int, _ bool) {
	if players == 0 {
		return
	}
	m.players.WithLabelValues(code).Set(float64(players))
}

func (m *Metrics) OnHostChanged(string, string) {}

func (m *Metrics) OnRoomFullRejected(string) {
	m.fullRejected.Inc()
}

func (m *Metrics) OnGameStarted(string, int, int) {
	m.gamesStarted.Inc()
}

func (m *Metrics) OnRoundStarted(string, string, uint64) {
	m.roundsStarted.Inc()
}

func (m *Metrics) OnRoundEnded(_, _, reason string, award int) {
	m.roundsEnded.WithLabelValues(reason).Inc()
	if reason == domain.RoundEndGuessed {
		m.awardPoints.Observe(float64(award))
	}
}

func (m *Metrics) OnGuess(_ string, correct, isClose bool) {
	result := "wrong"
	switch {
	case correct:
		result = "correct"
	case isClose:
		result = "close"
	}
	m.guesses.WithLabelValues(result).Inc()
}

func (m *Metrics) OnHintAdded(string, int) {
	m.hints.Inc()
}

func (m *Metrics) OnClientError(_, event string, _ error) {
	if event == "" {
		event = "unknown"
	}
	m.clientErrors.WithLabelValues(event).Inc()
}

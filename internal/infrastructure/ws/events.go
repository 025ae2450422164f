package ws

// Outbound events.
const (
	Connected    = "connected"
	RoomCreated  = "roomCreated"
	JoinedRoom   = "joinedRoom"
	UpdateUsers  = "updateUsers"
	NewHost      = "newHost"
	GameStarted  = "gameStarted"
	YourTurn     = "yourTurn"
	SecretMedia  = "secretMedia"
	AddHint      = "addHint"
	GameMessage  = "gameMessage"
	UpdateScores = "updateScores"
	WrongGuess   = "wrongGuess"
	Chat         = "chat"
	ErrorEvent   = "error"
)

// Inbound events.
const (
	CreateRoomEvent  = "createRoom"
	JoinRoomEvent    = "joinRoom"
	StartGameEvent   = "startGame"
	SubmitGuessEvent = "submitGuess"
	SkipRoundEvent   = "skipRound"
	AddHintEvent     = "addHint"
	ChatEvent        = "chat"
	LeaveRoomEvent   = "leaveRoom"
)

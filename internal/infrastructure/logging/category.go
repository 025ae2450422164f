package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	Game            Category = "Game"
	Connection      Category = "Connection"
	Persistence     Category = "Persistence"
	Provider        Category = "Provider"
	RabbitMQ        Category = "RabbitMQ"
	MongoDB         Category = "MongoDB"
	SQLite          Category = "SQLite"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	ExternalService SubCategory = "ExternalService"
	RateLimited     SubCategory = "RateLimited"

	// Game
	RoomCreated    SubCategory = "RoomCreated"
	RoomDeleted    SubCategory = "RoomDeleted"
	PlayerJoined   SubCategory = "PlayerJoined"
	PlayerLeft     SubCategory = "PlayerLeft"
	HostChanged    SubCategory = "HostChanged"
	GameStarted    SubCategory = "GameStarted"
	RoundStarted   SubCategory = "RoundStarted"
	RoundEnded     SubCategory = "RoundEnded"
	GuessSubmitted SubCategory = "GuessSubmitted"
	HintAdded      SubCategory = "HintAdded"
	SecretFetch    SubCategory = "SecretFetch"
	ClientError    SubCategory = "ClientError"
	StaleResume    SubCategory = "StaleResume"
	TimerExpired   SubCategory = "TimerExpired"
	InboundDecode  SubCategory = "InboundDecode"

	// Connection
	Connected    SubCategory = "Connected"
	Disconnected SubCategory = "Disconnected"
	WriteFailed  SubCategory = "WriteFailed"

	// Persistence
	Insert SubCategory = "Insert"
	Select SubCategory = "Select"
	Index  SubCategory = "Index"

	// RabbitMQ
	Publish SubCategory = "Publish"
	Consume SubCategory = "Consume"

	// RequestResponse
	Api SubCategory = "Api"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	HostIp       ExtraKey = "HostIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RequestBody  ExtraKey = "RequestBody"
	ResponseBody ExtraKey = "ResponseBody"
	ErrorMessage ExtraKey = "ErrorMessage"
	RoomCode     ExtraKey = "RoomCode"
	ConnectionID ExtraKey = "ConnectionID"
	Nickname     ExtraKey = "Nickname"
	EventType    ExtraKey = "EventType"
	RoundEpoch   ExtraKey = "RoundEpoch"
	Reason       ExtraKey = "Reason"
	Award        ExtraKey = "Award"
	Players      ExtraKey = "Players"
	WasHost      ExtraKey = "WasHost"
	Timer        ExtraKey = "Timer"
	Answer       ExtraKey = "Answer"
	Correct      ExtraKey = "Correct"
	Close        ExtraKey = "Close"
	HintLength   ExtraKey = "HintLength"
)

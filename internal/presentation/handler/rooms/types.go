package rooms

// statsResponse represents the live server counters
type statsResponse struct {
	Rooms       int `json:"rooms" example:"3"`        // Number of live rooms
	Connections int `json:"connections" example:"11"` // Number of open websocket connections
}

// eventResponse represents one audit log entry
type eventResponse struct {
	ID        string         `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"` // Event identifier
	EventType string         `json:"eventType" example:"round_ended"`                   // Lifecycle event type
	Timestamp string         `json:"timestamp" example:"2024-01-01T12:00:00Z"`          // When the event happened
	Metadata  map[string]any `json:"metadata,omitempty"`                                // Event specific fields
}

// eventsResponse represents a room's audit log
type eventsResponse struct {
	RoomCode string          `json:"roomCode" example:"ab12c"` // Room code
	Events   []eventResponse `json:"events"`                   // Events, newest first
}

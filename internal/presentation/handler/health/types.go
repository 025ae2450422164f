package health

// healthResponse represents the health status of the server and its backends
type healthResponse struct {
	Status    string            `json:"status" example:"ok" enum:"ok,unhealthy"`  // ok when every check passes
	Timestamp string            `json:"timestamp" example:"2024-01-01T12:00:00Z"` // Server time in RFC3339
	Uptime    string            `json:"uptime" example:"2h30m45s"`                // Time since start
	Checks    map[string]string `json:"checks,omitempty"`                         // Backend name -> "ok" or the failure
}

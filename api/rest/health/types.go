package health

// Response represents the health check response
type Response struct {
	Status         string `json:"status"`
	Service        string `json:"service"`
	Version        string `json:"version,omitempty"`
	ActiveSessions int    `json:"active_sessions"`
}

type PingResponse struct {
	Message string `json:"message"`
}

// SessionCounter reports how many page sessions are held in memory.
type SessionCounter interface {
	GetSessionCount() int
}

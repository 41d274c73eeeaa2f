package monitor

import "time"

// Status is the last probe result. Redis is nil when no Redis backend is configured.
type Status struct {
	Backend    bool          `json:"backend"`
	HTTPStatus int           `json:"http_status,omitempty"`
	Latency    time.Duration `json:"latency"`
	Redis      *bool         `json:"redis,omitempty"`
	Error      string        `json:"error,omitempty"`
	LastCheck  time.Time     `json:"last_check"`
}

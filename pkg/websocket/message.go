package websocket

import "time"

// Envelope - это "конверт", по Type фронтенд понимает, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	TypeViewState  = "view.state"
	TypeViewClosed = "view.closed"
)

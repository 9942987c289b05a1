package models

import "encoding/json"

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSNotice is a user-visible, non-fatal message pushed over a WebSocket
type WSNotice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Variant string `json:"variant,omitempty"`
}

// WSWatchOptions tells a driver device how to watch its position
type WSWatchOptions struct {
	HighAccuracy bool  `json:"high_accuracy"`
	MaximumAgeMs int64 `json:"maximum_age_ms"`
	TimeoutMs    int64 `json:"timeout_ms"`
}

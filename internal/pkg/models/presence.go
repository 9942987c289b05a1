package models

import "time"

// PresenceEvent is published when a driver goes online or offline
type PresenceEvent struct {
	DriverID  string    `json:"driver_id"`
	IsOnline  bool      `json:"is_online"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationEvent is published whenever a driver's stored position changes.
// Location is nil when the position was cleared.
type LocationEvent struct {
	DriverID  string       `json:"driver_id"`
	Location  *Coordinates `json:"location"`
	Geohash   string       `json:"geohash,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

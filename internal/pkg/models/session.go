package models

import "time"

// Session is the per-device state the client used to keep in ambient storage
type Session struct {
	ID          string    `json:"id"`
	IntroViewed bool      `json:"intro_viewed"`
	DriverPhone string    `json:"driver_phone,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoggedIn reports whether a driver identity is attached to the session
func (s *Session) LoggedIn() bool {
	return s.DriverPhone != ""
}

package models

import (
	"time"
)

// OTP represents a one-time passcode issued by the local provider
type OTP struct {
	MSISDN    string    `json:"msisdn"`
	CodeHash  string    `json:"code_hash"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OTPStatusSuccess is the status tag returned by the OTP side channel on success
const OTPStatusSuccess = "success"

// OTPResult is the status tag and human readable message returned by the OTP side channel
type OTPResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the side channel declared success
func (r *OTPResult) OK() bool {
	return r != nil && r.Status == OTPStatusSuccess
}

// AuthResponse represents the response after a completed login or registration
type AuthResponse struct {
	Token     string  `json:"token"`
	ExpiresAt int64   `json:"expires_at"`
	Login     bool    `json:"login"`
	Driver    *Driver `json:"driver"`
}

package constants

// HTTP headers and context keys
const (
	HeaderSessionID = "X-Session-ID"

	ContextDriverID = "driver_id"
	ContextMSISDN   = "msisdn"
	ContextRole     = "role"

	RoleDriver = "driver"
)

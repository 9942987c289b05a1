package constants

import "time"

// Redis key formats
const (
	KeySession          = "session:%s"           // Format: session:{session_id}
	KeyRegistrationFlow = "registration:flow:%s" // Format: registration:flow:{session_id}
	KeyRegistrationLock = "registration:lock:%s" // Format: registration:lock:{session_id}
	KeyDriverOTP        = "driver:otp:%s"        // Format: driver:otp:{phone}
)

// RegistrationFlowTTL bounds how long an abandoned registration draft survives
const RegistrationFlowTTL = 30 * time.Minute

// RegistrationLockTTL outlives the slowest registration step so a crashed
// holder never blocks its session for longer
const RegistrationLockTTL = time.Minute

// SessionTTL bounds how long an idle device session survives
const SessionTTL = 90 * 24 * time.Hour

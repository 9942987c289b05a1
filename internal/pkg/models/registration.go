package models

// RegistrationStage is a step of the driver registration or profile edit flow
type RegistrationStage string

const (
	StageCollectIdentity        RegistrationStage = "collect_identity"
	StageVerifyOTP              RegistrationStage = "verify_otp"
	StageCollectVehicleAndPhoto RegistrationStage = "collect_vehicle_and_photo"
	StageDone                   RegistrationStage = "done"
)

// RegistrationMode tells a new registration apart from an edit of an existing profile
type RegistrationMode string

const (
	ModeRegister RegistrationMode = "register"
	ModeEdit     RegistrationMode = "edit"
)

// RegistrationDraft is the data collected so far. PhotoURL holds the retained
// photo of an edited profile; DriverID is only set in edit mode.
type RegistrationDraft struct {
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	VehicleType VehicleType `json:"vehicle_type,omitempty"`
	PhotoURL    *string     `json:"photo_url,omitempty"`
	DriverID    string      `json:"driver_id,omitempty"`
}

// RegistrationSnapshot is the resumable state of a registration flow
type RegistrationSnapshot struct {
	Stage RegistrationStage `json:"stage"`
	Mode  RegistrationMode  `json:"mode"`
	Draft RegistrationDraft `json:"draft"`
}

// RegistrationOutcome is produced when a flow completes. Login is true when the
// verified phone already belonged to a driver.
type RegistrationOutcome struct {
	Driver *Driver
	Phone  string
	Login  bool
}

// PhotoUpload is a profile photo received from the client
type PhotoUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// RegistrationResponse is returned by every registration endpoint
type RegistrationResponse struct {
	State   RegistrationSnapshot `json:"state"`
	Message string               `json:"message,omitempty"`
	Auth    *AuthResponse        `json:"auth,omitempty"`
}

// IdentityRequest is the body of the identity step
type IdentityRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OTPRequest is the body of the verification step
type OTPRequest struct {
	Code string `json:"code"`
}

// VehicleRequest is the last registration step. Name is only honoured in edit mode.
type VehicleRequest struct {
	Name        string
	VehicleType VehicleType
	Photo       *PhotoUpload
}

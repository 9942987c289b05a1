package drivers

import (
	"context"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/mashaweer/mashaweer/services/drivers DriverRepo,SessionRepo,FlowRepo,OTPRepo

// DriverRepo defines the persistence of the drivers table
type DriverRepo interface {
	ListOnline(ctx context.Context, limit int) ([]models.Driver, error)
	GetByID(ctx context.Context, id string) (*models.Driver, error)
	GetByPhone(ctx context.Context, phone string) (*models.Driver, error)
	Create(ctx context.Context, payload *models.DriverPayload) (*models.Driver, error)
	Update(ctx context.Context, id string, payload *models.DriverPayload) (*models.Driver, error)

	// UpdateLocation stores a reported position
	UpdateLocation(ctx context.Context, id string, lat, lng float64, at time.Time) error
	// SetOnlineStatus flips is_online. Going offline clears the coordinates in the same update.
	SetOnlineStatus(ctx context.Context, id string, online bool, at time.Time) (*models.Driver, error)
}

// SessionRepo stores per-device sessions
type SessionRepo interface {
	GetSession(ctx context.Context, id string) (*models.Session, error)
	SaveSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, id string) error
}

// FlowRepo stores in-progress registration flows keyed by session
type FlowRepo interface {
	GetFlow(ctx context.Context, sessionID string) (*models.RegistrationSnapshot, error)
	SaveFlow(ctx context.Context, sessionID string, snapshot *models.RegistrationSnapshot) error
	DeleteFlow(ctx context.Context, sessionID string) error
	LockFlow(ctx context.Context, sessionID string) (func(), error)
}

// OTPRepo stores passcodes issued by the local OTP provider
type OTPRepo interface {
	CreateOTP(ctx context.Context, otp *models.OTP) error
	GetOTP(ctx context.Context, phone string) (*models.OTP, error)
	DeleteOTP(ctx context.Context, phone string) error
}

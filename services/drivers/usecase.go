package drivers

import (
	"context"

	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers/mapview"
	"github.com/mashaweer/mashaweer/services/drivers/reporter"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/mashaweer/mashaweer/services/drivers DriverUC

// DriverUC represents the drivers usecase interface
type DriverUC interface {
	// directory
	ListDrivers(ctx context.Context, query *models.DirectoryQuery) (*models.DirectoryResult, error)
	FetchOnlineDrivers(ctx context.Context) ([]models.Driver, error)
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	GetContact(ctx context.Context, id string) (*models.DriverContact, error)
	GetShare(ctx context.Context, id string, viewer *models.Coordinates) (*models.DriverShare, error)

	// presence
	SetStatus(ctx context.Context, driverID string, online bool) (*models.Driver, error)
	ConnectDevice(ctx context.Context, driverID string, source geolocation.Watcher, notifier reporter.Notifier) (*reporter.Reporter, error)
	DisconnectDevice(driverID string, r *reporter.Reporter)
	CloseDevices()

	// registration
	GetRegistration(ctx context.Context, sessionID string) (*models.RegistrationResponse, error)
	SubmitIdentity(ctx context.Context, sessionID string, req *models.IdentityRequest) (*models.RegistrationResponse, error)
	SubmitOTP(ctx context.Context, sessionID string, req *models.OTPRequest) (*models.RegistrationResponse, error)
	RegistrationBack(ctx context.Context, sessionID string) (*models.RegistrationResponse, error)
	SubmitVehicle(ctx context.Context, sessionID string, req *models.VehicleRequest) (*models.RegistrationResponse, error)
	StartEdit(ctx context.Context, sessionID, driverID string) (*models.RegistrationResponse, error)

	// session
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	MarkIntroViewed(ctx context.Context, sessionID string) (*models.Session, error)
	Logout(ctx context.Context, sessionID string) (*models.Session, error)

	// map
	NewMapView(surface mapview.Surface, locator geolocation.Locator) *mapview.View
}

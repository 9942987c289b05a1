package usecase

import (
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers"
	"github.com/mashaweer/mashaweer/services/drivers/mapview"
	"github.com/mashaweer/mashaweer/services/drivers/registration"
	"github.com/mashaweer/mashaweer/services/drivers/reporter"
)

// DriverUC implements the drivers business logic
type DriverUC struct {
	driverRepo  drivers.DriverRepo
	sessionRepo drivers.SessionRepo
	flowRepo    drivers.FlowRepo
	driverGW    drivers.DriverGW
	photos      drivers.PhotoStorage
	otp         drivers.OTPGateway
	geocoder    mapview.Geocoder
	reporters   *reporter.Manager
	cfg         *models.Config
}

// NewDriverUC creates a new driver usecase instance
func NewDriverUC(
	driverRepo drivers.DriverRepo,
	sessionRepo drivers.SessionRepo,
	flowRepo drivers.FlowRepo,
	driverGW drivers.DriverGW,
	photos drivers.PhotoStorage,
	otp drivers.OTPGateway,
	geocoder mapview.Geocoder,
	cfg *models.Config,
	reporterOpts ...reporter.Option,
) *DriverUC {
	uc := &DriverUC{
		driverRepo:  driverRepo,
		sessionRepo: sessionRepo,
		flowRepo:    flowRepo,
		driverGW:    driverGW,
		photos:      photos,
		otp:         otp,
		geocoder:    geocoder,
		cfg:         cfg,
	}

	opts := append([]reporter.Option{reporter.WithInterval(cfg.Reporter.Interval)}, reporterOpts...)
	uc.reporters = reporter.NewManager(&locationStore{repo: driverRepo, gw: driverGW}, opts...)
	return uc
}

func (uc *DriverUC) flowDeps() registration.Deps {
	return registration.Deps{
		OTP:     uc.otp,
		Photos:  uc.photos,
		Drivers: uc.driverRepo,
	}
}

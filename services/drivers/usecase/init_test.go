package usecase

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers/mocks"
	"github.com/mashaweer/mashaweer/services/drivers/reporter"
)

const testDriverID = "0b6f6f8e-6d6c-4c5b-9a51-3f5f1b2f7a10"

type ucMocks struct {
	driverRepo  *mocks.MockDriverRepo
	sessionRepo *mocks.MockSessionRepo
	flowRepo    *mocks.MockFlowRepo
	driverGW    *mocks.MockDriverGW
	photos      *mocks.MockPhotoStorage
	otp         *mocks.MockOTPGateway
}

func testConfig() *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{
			Secret:     "test-secret",
			Expiration: 60,
			Issuer:     "test-issuer",
		},
		Directory: models.DirectoryConfig{FetchLimit: 50, LocateTimeout: time.Second},
		// ticks never fire during a test
		Reporter: models.ReporterConfig{Interval: time.Hour},
	}
}

func newTestUC(t *testing.T) (*DriverUC, *ucMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &ucMocks{
		driverRepo:  mocks.NewMockDriverRepo(ctrl),
		sessionRepo: mocks.NewMockSessionRepo(ctrl),
		flowRepo:    mocks.NewMockFlowRepo(ctrl),
		driverGW:    mocks.NewMockDriverGW(ctrl),
		photos:      mocks.NewMockPhotoStorage(ctrl),
		otp:         mocks.NewMockOTPGateway(ctrl),
	}
	uc := NewDriverUC(m.driverRepo, m.sessionRepo, m.flowRepo, m.driverGW, m.photos, m.otp, nil, testConfig(),
		reporter.WithInterval(time.Hour))
	t.Cleanup(uc.CloseDevices)
	return uc, m
}

func ptr[T any](v T) *T { return &v }

func onlineDriver(id, name string, lat, lng float64) models.Driver {
	return models.Driver{
		ID:          id,
		Name:        name,
		Phone:       "01012345678",
		VehicleType: models.VehicleTukTuk,
		Latitude:    ptr(lat),
		Longitude:   ptr(lng),
		IsOnline:    true,
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/geo"
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers"
	"github.com/mashaweer/mashaweer/services/drivers/reporter"
)

// SetStatus turns a driver online or offline. Going offline is a single write
// that also clears the stored coordinates; when the driver's device is
// reporting, its reporter performs that write so no tick can follow it.
func (uc *DriverUC) SetStatus(ctx context.Context, driverID string, online bool) (*models.Driver, error) {
	if driverID == "" {
		return nil, models.ErrInvalidDriverID
	}

	var (
		driver *models.Driver
		err    error
	)
	if online {
		driver, err = uc.driverRepo.SetOnlineStatus(ctx, driverID, true, models.Now())
		if err != nil {
			return nil, err
		}
		if _, err := uc.reporters.Sync(ctx, driverID, true); err != nil {
			logger.WarnCtx(ctx, "Failed to start location reporting",
				logger.String("driver_id", driverID),
				logger.ErrorField(err))
		}
	} else {
		driver, err = uc.goOffline(ctx, driverID)
		if err != nil {
			return nil, err
		}
	}

	uc.publishPresence(ctx, driver)
	return driver, nil
}

// goOffline performs the single offline write, through the reporter when it is watching
func (uc *DriverUC) goOffline(ctx context.Context, driverID string) (*models.Driver, error) {
	handled, err := uc.reporters.Sync(ctx, driverID, false)
	if err != nil {
		return nil, err
	}
	if handled {
		return uc.driverRepo.GetByID(ctx, driverID)
	}
	return uc.driverRepo.SetOnlineStatus(ctx, driverID, false, models.Now())
}

// ConnectDevice attaches a reporter to a newly connected driver device. The
// reporter starts watching right away when the driver is already online.
func (uc *DriverUC) ConnectDevice(ctx context.Context, driverID string, source geolocation.Watcher, notifier reporter.Notifier) (*reporter.Reporter, error) {
	driver, err := uc.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	r := uc.reporters.Attach(driverID, source, notifier)
	if driver.IsOnline {
		if _, err := r.Sync(ctx, driverID, true); err != nil {
			logger.WarnCtx(ctx, "Failed to start location reporting",
				logger.String("driver_id", driverID),
				logger.ErrorField(err))
		}
	}

	logger.InfoCtx(ctx, "Driver device connected",
		logger.String("driver_id", driverID),
		logger.Bool("is_online", driver.IsOnline),
		logger.Int("devices", uc.reporters.Count()))
	return r, nil
}

// DisconnectDevice releases the reporter of a device that went away. Nothing is written.
func (uc *DriverUC) DisconnectDevice(driverID string, r *reporter.Reporter) {
	uc.reporters.Detach(driverID, r)
	logger.Info("Driver device disconnected",
		logger.String("driver_id", driverID),
		logger.Int("devices", uc.reporters.Count()))
}

// CloseDevices releases every reporter, used on shutdown
func (uc *DriverUC) CloseDevices() {
	uc.reporters.CloseAll()
}

func (uc *DriverUC) publishPresence(ctx context.Context, driver *models.Driver) {
	event := &models.PresenceEvent{
		DriverID:  driver.ID,
		IsOnline:  driver.IsOnline,
		Timestamp: models.Now(),
	}
	if err := uc.driverGW.PublishPresence(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish presence event",
			logger.String("driver_id", driver.ID),
			logger.ErrorField(err))
	}
}

// locationStore is where reporters write. Every write is followed by a best
// effort location event.
type locationStore struct {
	repo drivers.DriverRepo
	gw   drivers.DriverGW
}

func (s *locationStore) UpdateLocation(ctx context.Context, driverID string, lat, lng float64, at time.Time) error {
	if err := s.repo.UpdateLocation(ctx, driverID, lat, lng, at); err != nil {
		return err
	}

	coords := models.Coordinates{Latitude: lat, Longitude: lng}
	s.publish(ctx, &models.LocationEvent{
		DriverID:  driverID,
		Location:  &coords,
		Geohash:   geo.Encode(coords, geo.DefaultPrecision),
		Timestamp: at,
	})
	return nil
}

func (s *locationStore) ClearLocation(ctx context.Context, driverID string, at time.Time) error {
	if _, err := s.repo.SetOnlineStatus(ctx, driverID, false, at); err != nil {
		return err
	}
	s.publish(ctx, &models.LocationEvent{DriverID: driverID, Timestamp: at})
	return nil
}

func (s *locationStore) publish(ctx context.Context, event *models.LocationEvent) {
	if err := s.gw.PublishLocation(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish location event",
			logger.String("driver_id", event.DriverID),
			logger.ErrorField(err))
	}
}

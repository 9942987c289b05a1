package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers/directory"
)

// FetchOnlineDrivers returns the drivers that may be listed. A store failure
// yields an empty list and an error wrapping models.ErrFetchFailed.
func (uc *DriverUC) FetchOnlineDrivers(ctx context.Context) ([]models.Driver, error) {
	limit := uc.cfg.Directory.FetchLimit
	if limit <= 0 {
		limit = directory.DefaultFetchLimit
	}

	list, err := uc.driverRepo.ListOnline(ctx, limit)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to fetch online drivers", logger.ErrorField(err))
		return []models.Driver{}, fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
	}
	return directory.FilterListable(list), nil
}

// ListDrivers filters the online drivers and ranks them by distance from the viewer
func (uc *DriverUC) ListDrivers(ctx context.Context, query *models.DirectoryQuery) (*models.DirectoryResult, error) {
	list, fetchErr := uc.FetchOnlineDrivers(ctx)

	filtered := directory.ApplyFilters(list, query.Search, query.VehicleType)

	viewer, located := directory.LocateViewer(ctx,
		geolocation.Static{Position: query.Viewer},
		uc.cfg.Directory.LocateTimeout)

	return &models.DirectoryResult{
		Drivers:       directory.RankByDistance(filtered, viewer),
		ViewerLocated: located,
	}, fetchErr
}

// GetDriver returns one driver by id. Ids that are not UUIDs never reach the store.
func (uc *DriverUC) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidDriverID, id)
	}
	return uc.driverRepo.GetByID(ctx, id)
}

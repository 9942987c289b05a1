// Package directory filters and ranks the online drivers shown to a viewer.
// Every function here is pure except LocateViewer, which reads a position source.
package directory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/geo"
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// DefaultFetchLimit caps the online drivers read per fetch
const DefaultFetchLimit = 50

// DefaultLocateTimeout bounds the viewer's one-shot position read
const DefaultLocateTimeout = 10 * time.Second

// FilterListable drops drivers that are offline or have no coordinates.
// The store query already filters; this re-validates what came back.
func FilterListable(drivers []models.Driver) []models.Driver {
	result := make([]models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.Listable() {
			result = append(result, d)
		}
	}
	return result
}

// ApplyFilters keeps drivers whose name contains searchTerm (case-insensitive)
// and whose vehicle type equals vehicleType. An empty term and an empty or
// "all" vehicle type do not filter. The input slice is never modified.
func ApplyFilters(drivers []models.Driver, searchTerm string, vehicleType models.VehicleType) []models.Driver {
	term := strings.ToLower(searchTerm)
	anyVehicle := vehicleType == "" || vehicleType == models.VehicleAll

	result := make([]models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if term != "" && !strings.Contains(strings.ToLower(d.Name), term) {
			continue
		}
		if !anyVehicle && d.VehicleType != vehicleType {
			continue
		}
		result = append(result, d)
	}
	return result
}

// RankByDistance annotates drivers with their distance from viewer and sorts
// them nearest first. Drivers with unknown distance sort after every known one.
// Without a viewer position all distances are nil and the order is kept.
func RankByDistance(drivers []models.Driver, viewer *models.Coordinates) []models.RankedDriver {
	ranked := make([]models.RankedDriver, len(drivers))
	for i, d := range drivers {
		var distance *float64
		if viewer != nil {
			distance = geo.DistancePtr(viewer, d.Position())
		}
		ranked[i] = models.RankedDriver{
			Driver:         d,
			DistanceMeters: distance,
			DistanceText:   geo.FormatDistance(distance),
		}
	}
	if viewer == nil {
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].DistanceMeters, ranked[j].DistanceMeters
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
	return ranked
}

// LocateViewer performs a low accuracy one-shot read bounded by timeout.
// Denial, timeout and missing support all degrade to ok=false.
func LocateViewer(ctx context.Context, locator geolocation.Locator, timeout time.Duration) (*models.Coordinates, bool) {
	if locator == nil {
		return nil, false
	}
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pos, err := locator.Locate(ctx, geolocation.Options{HighAccuracy: false, Timeout: timeout})
	if err != nil {
		logger.WarnCtx(ctx, "Viewer location unavailable, distances will not be shown",
			logger.ErrorField(err))
		return nil, false
	}

	coords := pos.Coordinates
	return &coords, true
}

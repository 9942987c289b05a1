package usecase

import (
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/services/drivers/mapview"
)

// NewMapView creates a map screen drawing the online drivers on surface
func (uc *DriverUC) NewMapView(surface mapview.Surface, locator geolocation.Locator) *mapview.View {
	opts := []mapview.Option{
		mapview.WithPollInterval(uc.cfg.MapView.PollInterval),
		mapview.WithLocateTimeout(uc.cfg.MapView.LocateTimeout),
	}
	if uc.geocoder != nil {
		opts = append(opts, mapview.WithGeocoder(uc.geocoder))
	}
	return mapview.New(uc, surface, locator, opts...)
}

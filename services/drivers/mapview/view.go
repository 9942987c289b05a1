// Package mapview keeps a map surface in sync with the online drivers.
//
// The view polls the directory on a fixed interval and redraws every marker,
// shows at most one driver popup with the viewer's distance, and moves the
// camera to a driver, to the viewer or to a searched place on request.
package mapview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mashaweer/mashaweer/internal/pkg/geo"
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/internal/utils"
)

const (
	DefaultPollInterval  = 30 * time.Second
	DefaultLocateTimeout = 5 * time.Second

	// FocusZoom is the minimum zoom when flying to a driver or the viewer
	FocusZoom   = 15.0
	DefaultZoom = 12.0
	SearchZoom  = 14.0
)

// DefaultCenter is downtown Cairo
var DefaultCenter = models.Coordinates{Latitude: 30.0444, Longitude: 31.2357}

// Notices shown on the map
var (
	NoticeFetchFailed = models.WSNotice{
		Title:   "خطأ",
		Message: "لم نتمكن من تحميل بيانات السائقين.",
		Variant: "destructive",
	}
	NoticeViewerUnavailable = models.WSNotice{
		Title:   "خطأ",
		Message: "لا يمكن الوصول إلى موقعك. يرجى تفعيل خدمات الموقع.",
		Variant: "destructive",
	}
	NoticeDriverNotOnMap = models.WSNotice{
		Title:   "تنبيه",
		Message: "السائق غير متاح على الخريطة حالياً.",
		Variant: "warning",
	}
	NoticePlaceNotFound = models.WSNotice{
		Title:   "لم يتم العثور على نتائج",
		Message: "الرجاء محاولة البحث بكلمات أخرى.",
		Variant: "destructive",
	}
	NoticeSearchFailed = models.WSNotice{
		Title:   "خطأ في البحث",
		Message: "حدث خطأ أثناء محاولة البحث عن الموقع.",
		Variant: "destructive",
	}
)

// DriverFetcher reads the online drivers to draw
type DriverFetcher interface {
	FetchOnlineDrivers(ctx context.Context) ([]models.Driver, error)
}

// Geocoder resolves a free-text place query, preferring matches near a point.
// A query with no match returns models.ErrPlaceNotFound.
type Geocoder interface {
	Geocode(ctx context.Context, query string, near models.Coordinates) (*models.Coordinates, error)
}

// Option configures a View
type Option func(*View)

// WithPollInterval sets the redraw period
func WithPollInterval(d time.Duration) Option {
	return func(v *View) {
		if d > 0 {
			v.pollInterval = d
		}
	}
}

// WithLocateTimeout bounds viewer position reads
func WithLocateTimeout(d time.Duration) Option {
	return func(v *View) {
		if d > 0 {
			v.locateTimeout = d
		}
	}
}

// WithGeocoder enables place search
func WithGeocoder(g Geocoder) Option {
	return func(v *View) {
		v.geocoder = g
	}
}

// View is one map screen
type View struct {
	mu            sync.Mutex
	fetcher       DriverFetcher
	surface       Surface
	locator       geolocation.Locator
	geocoder      Geocoder
	pollInterval  time.Duration
	locateTimeout time.Duration
	newID         func() string

	drivers      map[string]models.Driver
	viewerMarker bool
	popupID      string
	camera       Camera
	closed       bool
}

// New creates a view over surface
func New(fetcher DriverFetcher, surface Surface, locator geolocation.Locator, opts ...Option) *View {
	v := &View{
		fetcher:       fetcher,
		surface:       surface,
		locator:       locator,
		pollInterval:  DefaultPollInterval,
		locateTimeout: DefaultLocateTimeout,
		newID:         uuid.NewString,
		drivers:       make(map[string]models.Driver),
		camera:        Camera{Center: DefaultCenter, Zoom: DefaultZoom},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run draws the drivers now and again every poll interval until ctx ends.
// The surface is cleared on return.
func (v *View) Run(ctx context.Context) error {
	defer v.Close()

	ticker := time.NewTicker(v.pollInterval)
	defer ticker.Stop()

	v.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			v.Refresh(ctx)
		}
	}
}

// Refresh replaces every driver marker with the current online drivers.
// On fetch failure the existing markers stay and a notice is shown.
func (v *View) Refresh(ctx context.Context) {
	drivers, err := v.fetcher.FetchOnlineDrivers(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	if err != nil {
		logger.WarnCtx(ctx, "Map refresh failed", logger.ErrorField(err))
		v.notice(NoticeFetchFailed)
		return
	}

	v.closePopupLocked()
	v.clearDriversLocked()
	for _, d := range drivers {
		pos := d.Position()
		if pos == nil || !d.IsOnline {
			continue
		}
		marker := Marker{
			ID:          markerID(d.ID),
			Kind:        KindDriver,
			Position:    *pos,
			Title:       d.Name,
			Avatar:      d.Avatar(),
			VehicleType: d.VehicleType,
		}
		if err := v.surface.AddMarker(marker); err != nil {
			logger.Warn("Failed to add driver marker", logger.String("driver_id", d.ID), logger.ErrorField(err))
			continue
		}
		v.drivers[d.ID] = d
	}
}

// MarkerClicked opens the popup of a driver with the viewer's current distance.
// Any open popup is closed first.
func (v *View) MarkerClicked(ctx context.Context, driverID string) error {
	v.mu.Lock()
	d, ok := v.drivers[driverID]
	closed := v.closed
	v.mu.Unlock()
	if closed {
		return nil
	}
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrDriverNotFound, driverID)
	}

	viewer := v.locateViewer(ctx)
	distance := geo.DistancePtr(viewer, d.Position())

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	// the driver may have gone away during the position read
	if _, ok := v.drivers[driverID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrDriverNotFound, driverID)
	}

	v.closePopupLocked()
	popup := Popup{
		ID:             v.newID(),
		MarkerID:       markerID(d.ID),
		Position:       *d.Position(),
		Driver:         d,
		Avatar:         d.Avatar(),
		VehicleLabel:   d.VehicleType.Label(),
		DistanceMeters: distance,
		DistanceText:   geo.FormatDistance(distance),
		CallURL:        utils.CallURL(d.Phone),
		WhatsAppURL:    utils.WhatsAppURL(d.Phone, fmt.Sprintf(utils.WhatsAppGreeting, d.Name)),
	}
	if err := v.surface.OpenPopup(popup); err != nil {
		return err
	}
	v.popupID = popup.ID

	return v.flyToLocked(*d.Position(), maxZoom(v.camera.Zoom, FocusZoom))
}

// PopupClosed releases the popup after the surface closed it
func (v *View) PopupClosed(popupID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.popupID == popupID {
		v.popupID = ""
	}
}

// CameraMoved records the surface's current center and zoom
func (v *View) CameraMoved(camera Camera) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera = camera
}

// FlyToDriver centers the camera on a driver shown on the map
func (v *View) FlyToDriver(driverID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}

	d, ok := v.drivers[driverID]
	if !ok {
		v.notice(NoticeDriverNotOnMap)
		return fmt.Errorf("%w: %s", models.ErrDriverNotFound, driverID)
	}
	return v.flyToLocked(*d.Position(), maxZoom(v.camera.Zoom, FocusZoom))
}

// FlyToViewer locates the viewer, moves the viewer marker there and centers on it
func (v *View) FlyToViewer(ctx context.Context) error {
	viewer := v.locateViewer(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	if viewer == nil {
		v.notice(NoticeViewerUnavailable)
		return geolocation.ErrPositionLost
	}

	if v.viewerMarker {
		_ = v.surface.RemoveMarker(ViewerMarkerID)
	}
	if err := v.surface.AddMarker(Marker{ID: ViewerMarkerID, Kind: KindViewer, Position: *viewer}); err != nil {
		return err
	}
	v.viewerMarker = true
	return v.flyToLocked(*viewer, FocusZoom)
}

// SearchPlace looks query up near the camera center and flies to the first match.
// Blank queries are ignored.
func (v *View) SearchPlace(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	v.mu.Lock()
	near := v.camera.Center
	v.mu.Unlock()

	var (
		place *models.Coordinates
		err   = models.ErrSearchUnavailable
	)
	if v.geocoder != nil {
		place, err = v.geocoder.Geocode(ctx, query, near)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	switch {
	case errors.Is(err, models.ErrPlaceNotFound):
		v.notice(NoticePlaceNotFound)
		return err
	case err != nil:
		v.notice(NoticeSearchFailed)
		return fmt.Errorf("place search %q: %w", query, err)
	}
	return v.flyToLocked(*place, SearchZoom)
}

// Close removes every marker and popup. Later calls on the view do nothing.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closePopupLocked()
	v.clearDriversLocked()
	if v.viewerMarker {
		_ = v.surface.RemoveMarker(ViewerMarkerID)
		v.viewerMarker = false
	}
	v.closed = true
}

// MarkerCount returns the number of driver markers on the surface
func (v *View) MarkerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.drivers)
}

// OpenPopup returns the id of the open popup, if any
func (v *View) OpenPopup() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.popupID, v.popupID != ""
}

func (v *View) locateViewer(ctx context.Context) *models.Coordinates {
	if v.locator == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, v.locateTimeout)
	defer cancel()

	pos, err := v.locator.Locate(ctx, geolocation.Options{Timeout: v.locateTimeout})
	if err != nil {
		logger.Debug("Viewer position unavailable", logger.ErrorField(err))
		return nil
	}
	return &pos.Coordinates
}

func (v *View) closePopupLocked() {
	if v.popupID == "" {
		return
	}
	if err := v.surface.ClosePopup(v.popupID); err != nil {
		logger.Debug("Failed to close popup", logger.ErrorField(err))
	}
	v.popupID = ""
}

func (v *View) clearDriversLocked() {
	for id := range v.drivers {
		if err := v.surface.RemoveMarker(markerID(id)); err != nil {
			logger.Debug("Failed to remove driver marker", logger.String("driver_id", id), logger.ErrorField(err))
		}
		delete(v.drivers, id)
	}
}

func (v *View) flyToLocked(center models.Coordinates, zoom float64) error {
	v.camera = Camera{Center: center, Zoom: zoom}
	return v.surface.FlyTo(v.camera)
}

func (v *View) notice(n models.WSNotice) {
	if err := v.surface.Notice(n); err != nil {
		logger.Debug("Failed to show map notice", logger.ErrorField(err))
	}
}

func markerID(driverID string) string {
	return KindDriver + ":" + driverID
}

func maxZoom(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

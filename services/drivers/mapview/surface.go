package mapview

import "github.com/mashaweer/mashaweer/internal/pkg/models"

// Marker kinds
const (
	KindDriver = "driver"
	KindViewer = "viewer"
)

// ViewerMarkerID identifies the viewer's own marker
const ViewerMarkerID = "viewer"

// Marker is a pin on the map surface
type Marker struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"`
	Position    models.Coordinates `json:"position"`
	Title       string             `json:"title,omitempty"`
	Avatar      string             `json:"avatar,omitempty"`
	VehicleType models.VehicleType `json:"vehicle_type,omitempty"`
}

// Popup is the driver card shown above a marker
type Popup struct {
	ID             string             `json:"id"`
	MarkerID       string             `json:"marker_id"`
	Position       models.Coordinates `json:"position"`
	Driver         models.Driver      `json:"driver"`
	Avatar         string             `json:"avatar"`
	VehicleLabel   string             `json:"vehicle_label"`
	DistanceMeters *float64           `json:"distance_meters"`
	DistanceText   string             `json:"distance_text"`
	CallURL        string             `json:"call_url"`
	WhatsAppURL    string             `json:"whatsapp_url"`
}

// Camera is a fly-to target
type Camera struct {
	Center models.Coordinates `json:"center"`
	Zoom   float64            `json:"zoom"`
}

// Surface renders the map. Implementations must be safe for use from one
// goroutine at a time; the View serializes its calls.
type Surface interface {
	AddMarker(m Marker) error
	RemoveMarker(id string) error
	OpenPopup(p Popup) error
	ClosePopup(id string) error
	FlyTo(camera Camera) error
	Notice(n models.WSNotice) error
}

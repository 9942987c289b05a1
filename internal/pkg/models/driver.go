package models

import (
	"time"
)

// VehicleType is the kind of vehicle a driver operates
type VehicleType string

const (
	VehicleTukTuk       VehicleType = "tuk_tuk"
	VehicleScooter      VehicleType = "scooter"
	VehiclePrivateCar   VehicleType = "private_car"
	VehicleTaxi         VehicleType = "taxi"
	VehicleTransportCar VehicleType = "transport_car"

	// VehicleAll is the directory filter sentinel meaning "any vehicle type"
	VehicleAll VehicleType = "all"
)

// VehicleTypeOption pairs a vehicle type with its display label
type VehicleTypeOption struct {
	Value VehicleType `json:"value"`
	Label string      `json:"label"`
}

// VehicleTypes lists the supported vehicle types in display order
var VehicleTypes = []VehicleTypeOption{
	{Value: VehicleTukTuk, Label: "توكتوك"},
	{Value: VehicleScooter, Label: "سكوتر"},
	{Value: VehiclePrivateCar, Label: "سيارة خاصة"},
	{Value: VehicleTaxi, Label: "تاكسي"},
	{Value: VehicleTransportCar, Label: "سيارة نقل"},
}

// Valid reports whether v is one of the supported vehicle types
func (v VehicleType) Valid() bool {
	for _, opt := range VehicleTypes {
		if opt.Value == v {
			return true
		}
	}
	return false
}

// Label returns the display label, falling back to the raw value
func (v VehicleType) Label() string {
	for _, opt := range VehicleTypes {
		if opt.Value == v {
			return opt.Label
		}
	}
	return string(v)
}

// Driver represents a registered vehicle operator
type Driver struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Phone       string      `json:"phone" db:"phone"`
	VehicleType VehicleType `json:"vehicle_type" db:"vehicle_type"`
	PhotoURL    *string     `json:"photo_url" db:"photo_url"`
	Latitude    *float64    `json:"latitude" db:"latitude"`
	Longitude   *float64    `json:"longitude" db:"longitude"`
	IsOnline    bool        `json:"is_online" db:"is_online"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// DefaultAvatarURL is used for drivers without a stored photo
const DefaultAvatarURL = "https://i.pravatar.cc/90?u="

// Position returns the driver's last reported coordinates, or nil if unknown
func (d *Driver) Position() *Coordinates {
	if d.Latitude == nil || d.Longitude == nil {
		return nil
	}
	return &Coordinates{Latitude: *d.Latitude, Longitude: *d.Longitude}
}

// Listable reports whether the driver may appear in the directory and on the map
func (d *Driver) Listable() bool {
	return d.IsOnline && d.Latitude != nil && d.Longitude != nil
}

// Avatar returns the photo URL or the default silhouette for this driver
func (d *Driver) Avatar() string {
	if d.PhotoURL != nil && *d.PhotoURL != "" {
		return *d.PhotoURL
	}
	return DefaultAvatarURL + d.ID
}

// RankedDriver is a driver annotated with its distance from the viewer
type RankedDriver struct {
	Driver
	DistanceMeters *float64 `json:"distance_meters"`
	DistanceText   string   `json:"distance_text"`
}

// DriverPayload carries the mutable fields written on registration or profile edit.
// IsOnline is only set for new registrations.
type DriverPayload struct {
	Name        string      `db:"name"`
	Phone       string      `db:"phone"`
	VehicleType VehicleType `db:"vehicle_type"`
	PhotoURL    *string     `db:"photo_url"`
	IsOnline    *bool       `db:"is_online"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

// StatusRequest toggles a driver's online flag
type StatusRequest struct {
	IsOnline bool `json:"is_online"`
}

// DriverContact holds the deep links used to reach a driver directly
type DriverContact struct {
	Phone       string `json:"phone"`
	CallURL     string `json:"call_url"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// DriverShare is the text a viewer shares about a driver and its fallback channel
type DriverShare struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// DirectoryQuery holds the directory filters and the viewer's one-shot position
type DirectoryQuery struct {
	Search      string
	VehicleType VehicleType
	Viewer      *Coordinates
}

// DirectoryResult is the filtered, ranked directory
type DirectoryResult struct {
	Drivers       []RankedDriver `json:"drivers"`
	ViewerLocated bool           `json:"viewer_located"`
}

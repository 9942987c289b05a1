package drivers

import (
	"context"
	"io"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/mashaweer/mashaweer/services/drivers DriverGW,PhotoStorage,OTPGateway

// DriverGW publishes driver events to the message broker
type DriverGW interface {
	PublishPresence(ctx context.Context, event *models.PresenceEvent) error
	PublishLocation(ctx context.Context, event *models.LocationEvent) error
}

// PhotoStorage is the object storage bucket holding driver photos
type PhotoStorage interface {
	// Upload stores body at path. Without upsert an existing object yields models.ErrPhotoExists.
	Upload(ctx context.Context, path, contentType string, body io.Reader, upsert bool) error
	PublicURL(path string) string
}

// OTPGateway is the one-time passcode side channel
type OTPGateway interface {
	Send(ctx context.Context, phone, name string) (*models.OTPResult, error)
	Verify(ctx context.Context, phone, code string) (*models.OTPResult, error)
}

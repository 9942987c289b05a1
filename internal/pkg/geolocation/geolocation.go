// Package geolocation models the device position source: one-shot reads and
// continuous watches with accuracy, timeout and staleness controls.
package geolocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// Options mirrors the controls a device position API accepts
type Options struct {
	HighAccuracy bool
	// Timeout bounds a one-shot read; zero means no bound beyond the context
	Timeout time.Duration
	// MaximumAge is the oldest cached fix that may be returned; zero demands a fresh one
	MaximumAge time.Duration
}

var (
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", models.ErrLocationUnavailable)
	ErrTimeout          = fmt.Errorf("%w: timed out", models.ErrLocationUnavailable)
	ErrPositionLost     = fmt.Errorf("%w: position unavailable", models.ErrLocationUnavailable)
	ErrUnsupported      = fmt.Errorf("%w: %w", models.ErrLocationUnavailable, models.ErrLocationUnsupported)
	ErrSourceClosed     = fmt.Errorf("%w: source closed", models.ErrLocationUnavailable)
)

// Error codes a client reports in a position.error event
const (
	CodePermissionDenied = "permission_denied"
	CodeTimeout          = "timeout"
	CodeUnavailable      = "unavailable"
	CodeUnsupported      = "unsupported"
)

// ErrorFromCode maps a client error code onto a package error
func ErrorFromCode(code string) error {
	switch code {
	case CodePermissionDenied:
		return ErrPermissionDenied
	case CodeTimeout:
		return ErrTimeout
	case CodeUnsupported:
		return ErrUnsupported
	default:
		return ErrPositionLost
	}
}

// IsUnavailable reports whether err means "no position", as opposed to a bug
func IsUnavailable(err error) bool {
	return errors.Is(err, models.ErrLocationUnavailable)
}

// Locator performs one-shot position reads
type Locator interface {
	Locate(ctx context.Context, opts Options) (models.Position, error)
}

// Watch is a running continuous position watch. C is closed when the source goes away.
type Watch interface {
	C() <-chan models.Position
	Stop()
}

// Watcher starts continuous position watches
type Watcher interface {
	Watch(opts Options) (Watch, error)
}

// Static is a Locator over a position supplied up front, such as request
// coordinates. A nil position behaves like a device without geolocation.
type Static struct {
	Position *models.Coordinates
}

// Locate returns the fixed position or ErrUnsupported
func (s Static) Locate(ctx context.Context, _ Options) (models.Position, error) {
	if err := ctx.Err(); err != nil {
		return models.Position{}, ErrTimeout
	}
	if s.Position == nil {
		return models.Position{}, ErrUnsupported
	}
	if !s.Position.Valid() {
		return models.Position{}, ErrPositionLost
	}
	return models.Position{Coordinates: *s.Position, Timestamp: models.Now()}, nil
}

package gateway

import (
	"context"
	"fmt"

	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	nr "github.com/mashaweer/mashaweer/internal/pkg/newrelic"
)

// Publisher is a broker producer. Both the NATS and the NSQ producers satisfy it.
type Publisher interface {
	Publish(subject string, message interface{}) error
}

// EventGW publishes driver presence and location events
type EventGW struct {
	publisher Publisher
}

// NewEventGW creates an event gateway. A nil publisher drops every event.
func NewEventGW(publisher Publisher) *EventGW {
	return &EventGW{publisher: publisher}
}

// PublishPresence publishes an online or offline transition
func (g *EventGW) PublishPresence(ctx context.Context, event *models.PresenceEvent) error {
	return g.publish(ctx, constants.SubjectDriverPresence, event)
}

// PublishLocation publishes a stored or cleared position
func (g *EventGW) PublishLocation(ctx context.Context, event *models.LocationEvent) error {
	return g.publish(ctx, constants.SubjectDriverLocation, event)
}

func (g *EventGW) publish(ctx context.Context, subject string, event interface{}) error {
	if g.publisher == nil {
		return nil
	}
	err := nr.WithSegment(ctx, "Publish/"+subject, func() error {
		return g.publisher.Publish(subject, event)
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to publish driver event",
			logger.String("subject", subject),
			logger.ErrorField(err))
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}

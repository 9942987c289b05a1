package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

type recordingPublisher struct {
	subjects []string
	messages []interface{}
	err      error
}

func (p *recordingPublisher) Publish(subject string, message interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.messages = append(p.messages, message)
	return nil
}

func TestEventGW_Publish(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	presence := &models.PresenceEvent{DriverID: "d1", IsOnline: true, Timestamp: now}
	location := &models.LocationEvent{DriverID: "d1", Location: &models.Coordinates{Latitude: 30.04, Longitude: 31.23}, Geohash: "stq4s3", Timestamp: now}

	tests := []struct {
		name       string
		publisher  *recordingPublisher
		wantErr    bool
		assertFunc func(t *testing.T, p *recordingPublisher)
	}{
		{
			name:      "routes events to their subjects",
			publisher: &recordingPublisher{},
			assertFunc: func(t *testing.T, p *recordingPublisher) {
				assert.Equal(t, []string{constants.SubjectDriverPresence, constants.SubjectDriverLocation}, p.subjects)
				assert.Same(t, presence, p.messages[0])
				assert.Same(t, location, p.messages[1])
			},
		},
		{
			name:      "publisher failure is returned",
			publisher: &recordingPublisher{err: errors.New("broker down")},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			gw := NewEventGW(tt.publisher)

			// Act
			errPresence := gw.PublishPresence(context.Background(), presence)
			errLocation := gw.PublishLocation(context.Background(), location)

			// Assert
			if tt.wantErr {
				assert.Error(t, errPresence)
				assert.Error(t, errLocation)
				return
			}
			require.NoError(t, errPresence)
			require.NoError(t, errLocation)
			tt.assertFunc(t, tt.publisher)
		})
	}
}

func TestEventGW_NilPublisherDrops(t *testing.T) {
	gw := NewEventGW(nil)
	assert.NoError(t, gw.PublishPresence(context.Background(), &models.PresenceEvent{DriverID: "d1"}))
	assert.NoError(t, gw.PublishLocation(context.Background(), &models.LocationEvent{DriverID: "d1"}))
}

func TestNewEventPublisher_None(t *testing.T) {
	cfg := &models.Config{}
	cfg.Events.Broker = constants.BrokerNone

	publisher, stop, err := NewEventPublisher(cfg)

	require.NoError(t, err)
	assert.Nil(t, publisher)
	assert.NotPanics(t, stop)
}

func TestNewEventPublisher_Unknown(t *testing.T) {
	cfg := &models.Config{}
	cfg.Events.Broker = "kafka"

	_, _, err := NewEventPublisher(cfg)

	assert.Error(t, err)
}

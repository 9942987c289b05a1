package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mashaweer/mashaweer/services/drivers/mocks"
	"github.com/mashaweer/mashaweer/services/drivers/reporter"
)

type nopStore struct {
	mu     sync.Mutex
	writes int
}

func (s *nopStore) UpdateLocation(context.Context, string, float64, float64, time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	return nil
}

func (s *nopStore) ClearLocation(context.Context, string, time.Time) error {
	return nil
}

func startServer(t *testing.T, path string, driverID string, handler echo.HandlerFunc) string {
	t.Helper()
	e := echo.New()
	e.GET(path, handler, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if driverID != "" {
				c.Set(constants.ContextDriverID, driverID)
			}
			return next(c)
		}
	})
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http") + path
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	return ws
}

func receiveEvent(t *testing.T, ws *websocket.Conn, event string) models.WSMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg models.WSMessage
		require.NoError(t, websocket.JSON.Receive(ws, &msg))
		if msg.Event == event {
			return msg
		}
	}
}

func send(t *testing.T, ws *websocket.Conn, event string, data interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, websocket.JSON.Send(ws, models.WSMessage{Event: event, Data: raw}))
}

func TestHandleLocation_MissingDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := NewLocationHandler(mocks.NewMockDriverUC(ctrl))

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ws/drivers/location", nil), httptest.NewRecorder())

	err := h.HandleLocation(c)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing driver credentials")
}

func TestHandleLocation_StreamsPositionsToReporter(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockDriverUC(ctrl)
	store := &nopStore{}

	attachedCh := make(chan *reporter.Reporter, 1)
	disconnected := make(chan struct{})
	uc.EXPECT().ConnectDevice(gomock.Any(), "d1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, driverID string, source geolocation.Watcher, notifier reporter.Notifier) (*reporter.Reporter, error) {
			r := reporter.New(store, source, notifier, reporter.WithInterval(time.Hour))
			_, err := r.Sync(ctx, driverID, true)
			attachedCh <- r
			return r, err
		})
	uc.EXPECT().DisconnectDevice("d1", gomock.Any()).Do(func(_ string, r *reporter.Reporter) {
		r.Close()
		close(disconnected)
	})

	url := startServer(t, "/ws/drivers/location", "d1", NewLocationHandler(uc).HandleLocation)
	ws := dial(t, url)

	// Act
	watch := receiveEvent(t, ws, constants.EventWatch)
	send(t, ws, constants.EventPosition, models.Position{
		Coordinates: models.Coordinates{Latitude: 30.0444, Longitude: 31.2357},
		Accuracy:    8,
	})

	// Assert
	attached := <-attachedCh
	var opts models.WSWatchOptions
	require.NoError(t, json.Unmarshal(watch.Data, &opts))
	assert.True(t, opts.HighAccuracy)
	assert.Equal(t, int64(0), opts.MaximumAgeMs)

	assert.Eventually(t, func() bool {
		pos, ok := attached.LastKnown()
		return ok && pos.Latitude == 30.0444
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, ws.Close())
	select {
	case <-disconnected:
	case <-time.After(3 * time.Second):
		t.Fatal("device was not disconnected")
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 0, store.writes)
}

func TestHandleLocation_InvalidPositionAndErrors(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockDriverUC(ctrl)
	uc.EXPECT().ConnectDevice(gomock.Any(), "d1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, source geolocation.Watcher, notifier reporter.Notifier) (*reporter.Reporter, error) {
			return reporter.New(&nopStore{}, source, notifier), nil
		})
	uc.EXPECT().DisconnectDevice("d1", gomock.Any()).AnyTimes()

	url := startServer(t, "/ws/drivers/location", "d1", NewLocationHandler(uc).HandleLocation)
	ws := dial(t, url)
	defer ws.Close()

	// Act + Assert
	send(t, ws, constants.EventPosition, models.Coordinates{Latitude: 120, Longitude: 31})
	msg := receiveEvent(t, ws, constants.EventError)
	assert.Contains(t, string(msg.Data), constants.ErrorInvalidLocation)

	send(t, ws, constants.EventPositionError, positionErrorData{Code: geolocation.CodeUnsupported})
	notice := receiveEvent(t, ws, constants.EventNotice)
	var n models.WSNotice
	require.NoError(t, json.Unmarshal(notice.Data, &n))
	assert.Equal(t, reporter.NoticeUnsupported.Title, n.Title)
}

func TestHandleLocation_UnknownDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockDriverUC(ctrl)
	uc.EXPECT().ConnectDevice(gomock.Any(), "d1", gomock.Any(), gomock.Any()).Return(nil, models.ErrDriverNotFound)

	url := startServer(t, "/ws/drivers/location", "d1", NewLocationHandler(uc).HandleLocation)
	ws := dial(t, url)
	defer ws.Close()

	msg := receiveEvent(t, ws, constants.EventError)
	assert.Contains(t, string(msg.Data), constants.ErrorDriverNotFound)
}

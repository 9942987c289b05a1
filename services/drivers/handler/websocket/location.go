package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/middleware"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	wspkg "github.com/mashaweer/mashaweer/internal/pkg/websocket"
	"github.com/mashaweer/mashaweer/services/drivers"
	"github.com/mashaweer/mashaweer/services/drivers/reporter"
	"golang.org/x/net/websocket"
)

type positionErrorData struct {
	Code string `json:"code"`
}

// LocationHandler streams a driver device's positions into its reporter
type LocationHandler struct {
	driverUC drivers.DriverUC
}

// NewLocationHandler creates a new driver location stream handler
func NewLocationHandler(driverUC drivers.DriverUC) *LocationHandler {
	return &LocationHandler{driverUC: driverUC}
}

// HandleLocation handles GET /ws/drivers/location. The connection owns the
// driver's reporter: closing it releases the reporter without a write.
func (h *LocationHandler) HandleLocation(c echo.Context) error {
	driverID := middleware.DriverID(c)
	if driverID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing driver credentials in token")
	}

	server := wspkg.NewServer(func(ws *websocket.Conn) {
		conn := wspkg.NewConn(ws)
		defer conn.Close()
		h.serve(c.Request().Context(), driverID, conn)
	})
	server.ServeHTTP(c.Response(), c.Request())
	return nil
}

func (h *LocationHandler) serve(ctx context.Context, driverID string, conn *wspkg.Conn) {
	feed := geolocation.NewFeed(nil)
	defer feed.Close()

	notifier := reporter.NotifierFunc(func(n models.WSNotice) {
		if err := conn.SendNotice(n); err != nil {
			logger.Warn("Failed to send notice to driver",
				logger.String("driver_id", driverID),
				logger.ErrorField(err))
		}
	})

	r, err := h.driverUC.ConnectDevice(ctx, driverID, &announcingWatcher{feed: feed, conn: conn}, notifier)
	if err != nil {
		logger.Error("Failed to attach driver device",
			logger.String("driver_id", driverID),
			logger.ErrorField(err))
		_ = conn.SendError(constants.ErrorDriverNotFound, err.Error())
		return
	}
	defer h.driverUC.DisconnectDevice(driverID, r)

	for {
		var msg models.WSMessage
		if err := conn.Receive(&msg); err != nil {
			if err != io.EOF {
				logger.Error("Error receiving driver location message",
					logger.String("driver_id", driverID),
					logger.ErrorField(err))
			}
			return
		}

		switch msg.Event {
		case constants.EventPosition:
			var pos models.Position
			if err := json.Unmarshal(msg.Data, &pos); err != nil {
				_ = conn.SendError(constants.ErrorInvalidFormat, "Invalid position format")
				continue
			}
			if !pos.Valid() {
				_ = conn.SendError(constants.ErrorInvalidLocation, models.ErrInvalidLocation.Error())
				continue
			}
			feed.Push(pos)

		case constants.EventPositionError:
			var data positionErrorData
			_ = json.Unmarshal(msg.Data, &data)
			positionErr := geolocation.ErrorFromCode(data.Code)
			feed.Fail(positionErr)

			notice := reporter.NoticeSourceLost
			if errors.Is(positionErr, geolocation.ErrUnsupported) {
				notice = reporter.NoticeUnsupported
			}
			notifier.Notify(notice)

		default:
			_ = conn.SendError(constants.ErrorInvalidFormat, "Unknown event: "+msg.Event)
		}
	}
}

// announcingWatcher tells the device how to watch whenever the reporter
// starts watching
type announcingWatcher struct {
	feed *geolocation.Feed
	conn *wspkg.Conn
}

func (w *announcingWatcher) Watch(opts geolocation.Options) (geolocation.Watch, error) {
	watch, err := w.feed.Watch(opts)
	if err != nil {
		return nil, err
	}
	if err := w.conn.Send(constants.EventWatch, models.WSWatchOptions{
		HighAccuracy: opts.HighAccuracy,
		MaximumAgeMs: opts.MaximumAge.Milliseconds(),
		TimeoutMs:    opts.Timeout.Milliseconds(),
	}); err != nil {
		logger.Warn("Failed to announce watch options", logger.ErrorField(err))
	}
	return watch, nil
}

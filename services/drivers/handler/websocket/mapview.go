package websocket

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	wspkg "github.com/mashaweer/mashaweer/internal/pkg/websocket"
	"github.com/mashaweer/mashaweer/services/drivers"
	"github.com/mashaweer/mashaweer/services/drivers/mapview"
	"golang.org/x/net/websocket"
)

type driverRef struct {
	DriverID string `json:"driver_id"`
}

type popupRef struct {
	PopupID string `json:"popup_id"`
}

type placeQuery struct {
	Query string `json:"query"`
}

type locateCommand struct {
	RequestID    string `json:"request_id"`
	HighAccuracy bool   `json:"high_accuracy"`
	TimeoutMs    int64  `json:"timeout_ms"`
	MaximumAgeMs int64  `json:"maximum_age_ms"`
}

// MapHandler drives a map screen over a WebSocket: surface commands go out,
// clicks, camera moves, place searches and viewer positions come in
type MapHandler struct {
	driverUC drivers.DriverUC
}

// NewMapHandler creates a new map surface handler
func NewMapHandler(driverUC drivers.DriverUC) *MapHandler {
	return &MapHandler{driverUC: driverUC}
}

// HandleMap handles GET /ws/map
func (h *MapHandler) HandleMap(c echo.Context) error {
	server := wspkg.NewServer(func(ws *websocket.Conn) {
		conn := wspkg.NewConn(ws)
		defer conn.Close()
		h.serve(c.Request().Context(), conn)
	})
	server.ServeHTTP(c.Response(), c.Request())
	return nil
}

func (h *MapHandler) serve(parent context.Context, conn *wspkg.Conn) {
	ctx, cancel := context.WithCancel(parent)

	feed := geolocation.NewFeed(func(opts geolocation.Options) error {
		return conn.Send(constants.CommandLocate, locateCommand{
			RequestID:    uuid.NewString(),
			HighAccuracy: opts.HighAccuracy,
			TimeoutMs:    opts.Timeout.Milliseconds(),
			MaximumAgeMs: opts.MaximumAge.Milliseconds(),
		})
	})

	view := h.driverUC.NewMapView(&surface{conn: conn}, feed)

	// clicks wait on a viewer position that arrives through this same loop
	var pending sync.WaitGroup
	pending.Add(1)
	go func() {
		defer pending.Done()
		_ = view.Run(ctx)
	}()

	defer func() {
		cancel()
		feed.Close()
		pending.Wait()
		view.Close()
	}()

	for {
		var msg models.WSMessage
		if err := conn.Receive(&msg); err != nil {
			if err != io.EOF {
				logger.Error("Error receiving map message", logger.ErrorField(err))
			}
			return
		}

		switch msg.Event {
		case constants.EventMarkerClick:
			var ref driverRef
			if err := json.Unmarshal(msg.Data, &ref); err != nil || ref.DriverID == "" {
				_ = conn.SendError(constants.ErrorInvalidFormat, "driver_id is required")
				continue
			}
			pending.Add(1)
			go func() {
				defer pending.Done()
				if err := view.MarkerClicked(ctx, ref.DriverID); err != nil {
					logger.Warn("Failed to open driver popup",
						logger.String("driver_id", ref.DriverID),
						logger.ErrorField(err))
				}
			}()

		case constants.EventPopupClosed:
			var ref popupRef
			if err := json.Unmarshal(msg.Data, &ref); err == nil {
				view.PopupClosed(ref.PopupID)
			}

		case constants.EventCameraMoved:
			var camera mapview.Camera
			if err := json.Unmarshal(msg.Data, &camera); err != nil {
				_ = conn.SendError(constants.ErrorInvalidFormat, "Invalid camera format")
				continue
			}
			view.CameraMoved(camera)

		case constants.EventLocateDriver:
			var ref driverRef
			if err := json.Unmarshal(msg.Data, &ref); err != nil || ref.DriverID == "" {
				_ = conn.SendError(constants.ErrorInvalidFormat, "driver_id is required")
				continue
			}
			if err := view.FlyToDriver(ref.DriverID); err != nil {
				_ = conn.SendError(constants.ErrorDriverNotFound, err.Error())
			}

		case constants.EventLocateMe:
			pending.Add(1)
			go func() {
				defer pending.Done()
				if err := view.FlyToViewer(ctx); err != nil {
					logger.Warn("Failed to fly to viewer", logger.ErrorField(err))
				}
			}()

		case constants.EventPlaceSearch:
			var q placeQuery
			if err := json.Unmarshal(msg.Data, &q); err != nil {
				_ = conn.SendError(constants.ErrorInvalidFormat, "Invalid search format")
				continue
			}
			pending.Add(1)
			go func() {
				defer pending.Done()
				if err := view.SearchPlace(ctx, q.Query); err != nil {
					logger.Warn("Place search failed",
						logger.String("query", q.Query),
						logger.ErrorField(err))
				}
			}()

		case constants.EventPosition:
			var pos models.Position
			if err := json.Unmarshal(msg.Data, &pos); err != nil || !pos.Valid() {
				feed.Fail(geolocation.ErrPositionLost)
				continue
			}
			feed.Push(pos)

		case constants.EventPositionError:
			var data positionErrorData
			_ = json.Unmarshal(msg.Data, &data)
			feed.Fail(geolocation.ErrorFromCode(data.Code))

		default:
			_ = conn.SendError(constants.ErrorInvalidFormat, "Unknown event: "+msg.Event)
		}
	}
}

// surface renders map commands onto the connection
type surface struct {
	conn *wspkg.Conn
}

func (s *surface) AddMarker(m mapview.Marker) error {
	return s.conn.Send(constants.CommandMarkerAdd, m)
}

func (s *surface) RemoveMarker(id string) error {
	return s.conn.Send(constants.CommandMarkerRemove, map[string]string{"id": id})
}

func (s *surface) OpenPopup(p mapview.Popup) error {
	return s.conn.Send(constants.CommandPopupOpen, p)
}

func (s *surface) ClosePopup(id string) error {
	return s.conn.Send(constants.CommandPopupClose, map[string]string{"id": id})
}

func (s *surface) FlyTo(camera mapview.Camera) error {
	return s.conn.Send(constants.CommandCameraFlyTo, camera)
}

func (s *surface) Notice(n models.WSNotice) error {
	return s.conn.SendNotice(n)
}

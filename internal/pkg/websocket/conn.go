package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/mashaweer/mashaweer/internal/pkg/constants"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"golang.org/x/net/websocket"
)

// ErrClosed is returned when sending on a closed connection
var ErrClosed = errors.New("websocket connection closed")

// Conn serializes writes to a websocket so several goroutines can send
type Conn struct {
	ws     *websocket.Conn
	mu     sync.Mutex
	closed bool
}

// NewConn wraps an accepted websocket
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// Send writes an event with a JSON payload
func (c *Conn) Send(event string, data interface{}) error {
	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return websocket.JSON.Send(c.ws, models.WSMessage{Event: event, Data: rawData})
}

// SendNotice pushes a user-visible, non-fatal message
func (c *Conn) SendNotice(notice models.WSNotice) error {
	return c.Send(constants.EventNotice, notice)
}

// SendError pushes an error event with a machine readable code
func (c *Conn) SendError(code, message string) error {
	return c.Send(constants.EventError, map[string]string{"code": code, "message": message})
}

// Receive blocks for the next message from the client
func (c *Conn) Receive(msg *models.WSMessage) error {
	return websocket.JSON.Receive(c.ws, msg)
}

// Close closes the underlying socket; later sends fail with ErrClosed
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.ws.Close()
}

// NewServer builds a websocket server that accepts any origin
func NewServer(handler func(*websocket.Conn)) *websocket.Server {
	return &websocket.Server{
		Handler: handler,
		Handshake: func(config *websocket.Config, req *http.Request) error {
			config.Origin = config.Location
			return nil
		},
	}
}

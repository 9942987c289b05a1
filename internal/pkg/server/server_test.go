package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestShutdownManager_ReverseOrderAndContinuesOnError(t *testing.T) {
	sm := NewShutdownManager(logger.NewNopLogger())

	var order []int
	sm.Register(func(context.Context) error { order = append(order, 1); return nil })
	sm.Register(func(context.Context) error { order = append(order, 2); return errors.New("redis close failed") })
	sm.Register(func(context.Context) error { order = append(order, 3); return nil })

	sm.Shutdown(context.Background())

	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestGracefulServer_RunStopsOnContextCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	port := freePort(t)
	srv := NewGracefulServer(e, logger.NewNopLogger(), "127.0.0.1", port, time.Second)

	closed := false
	srv.OnShutdown(func(context.Context) error { closed = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(port)) + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, closed)
}

package reporter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type write struct {
	driverID string
	lat, lng float64
	clear    bool
}

type fakeStore struct {
	mu        sync.Mutex
	writes    []write
	updateErr error
	clearErr  error
}

func (s *fakeStore) UpdateLocation(_ context.Context, driverID string, lat, lng float64, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, write{driverID: driverID, lat: lat, lng: lng})
	return s.updateErr
}

func (s *fakeStore) ClearLocation(_ context.Context, driverID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, write{driverID: driverID, clear: true})
	return s.clearErr
}

func (s *fakeStore) snapshot() []write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]write(nil), s.writes...)
}

type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type notices struct {
	mu   sync.Mutex
	list []models.WSNotice
}

func (n *notices) Notify(notice models.WSNotice) {
	n.mu.Lock()
	n.list = append(n.list, notice)
	n.mu.Unlock()
}

func (n *notices) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.list)
}

type harness struct {
	store    *fakeStore
	feed     *geolocation.Feed
	ticker   *manualTicker
	notices  *notices
	reporter *Reporter
}

func newHarness() *harness {
	h := &harness{
		store:   &fakeStore{},
		feed:    geolocation.NewFeed(nil),
		ticker:  &manualTicker{ch: make(chan time.Time)},
		notices: &notices{},
	}
	h.reporter = New(h.store, h.feed, h.notices,
		WithTicker(func(time.Duration) Ticker { return h.ticker }))
	return h
}

func (h *harness) push(t *testing.T, lat, lng float64) {
	h.feed.Push(models.Position{Coordinates: models.Coordinates{Latitude: lat, Longitude: lng}})
	require.Eventually(t, func() bool {
		pos, ok := h.reporter.LastKnown()
		return ok && pos.Latitude == lat && pos.Longitude == lng
	}, time.Second, time.Millisecond)
}

func (h *harness) tick() {
	h.ticker.ch <- time.Now()
}

func TestReporter_TickWritesLastKnownPosition(t *testing.T) {
	// Arrange
	h := newHarness()
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)
	assert.Equal(t, Watching, h.reporter.State())

	// Act
	h.push(t, 30.1, 31.1)
	h.push(t, 30.2, 31.2)
	h.tick()

	// Assert
	require.Eventually(t, func() bool { return len(h.store.snapshot()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []write{{driverID: "d-1", lat: 30.2, lng: 31.2}}, h.store.snapshot())
	h.reporter.Close()
}

func TestReporter_TickWithoutPositionIsNoop(t *testing.T) {
	h := newHarness()
	_, err := h.reporter.Sync(context.Background(), "d-1", true)
	require.NoError(t, err)

	h.tick()
	h.tick()
	h.reporter.Close()

	assert.Empty(t, h.store.snapshot())
}

func TestReporter_OfflineBeforeTickClearsOnce(t *testing.T) {
	// Arrange
	h := newHarness()
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)
	h.push(t, 30.1, 31.1)

	// Act
	wrote, err := h.reporter.Sync(ctx, "d-1", false)
	again, againErr := h.reporter.Sync(ctx, "d-1", false)

	// Assert
	require.NoError(t, err)
	require.NoError(t, againErr)
	assert.True(t, wrote)
	// the repeated offline signal is still owned by the reporter, without a second write
	assert.True(t, again)
	assert.Equal(t, []write{{driverID: "d-1", clear: true}}, h.store.snapshot())
	assert.Equal(t, Idle, h.reporter.State())
	assert.True(t, h.ticker.isStopped())
}

func TestReporter_OfflineAfterTick(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)
	h.push(t, 30.1, 31.1)
	h.tick()
	require.Eventually(t, func() bool { return len(h.store.snapshot()) == 1 }, time.Second, time.Millisecond)

	_, err = h.reporter.Sync(ctx, "d-1", false)
	require.NoError(t, err)

	writes := h.store.snapshot()
	require.Len(t, writes, 2)
	assert.False(t, writes[0].clear)
	assert.True(t, writes[1].clear)
}

func TestReporter_LogoutStopsWithoutWrite(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)
	h.push(t, 30.1, 31.1)

	wrote, err := h.reporter.Sync(ctx, "", false)

	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Empty(t, h.store.snapshot())
	assert.Equal(t, Idle, h.reporter.State())
}

func TestReporter_IdleOfflineDoesNotWrite(t *testing.T) {
	h := newHarness()

	wrote, err := h.reporter.Sync(context.Background(), "d-1", false)

	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Empty(t, h.store.snapshot())
}

func TestReporter_WriteFailureIsReportedAndLoopContinues(t *testing.T) {
	// Arrange
	h := newHarness()
	h.store.updateErr = errors.New("db down")
	_, err := h.reporter.Sync(context.Background(), "d-1", true)
	require.NoError(t, err)
	h.push(t, 30.1, 31.1)

	// Act
	h.tick()
	h.tick()

	// Assert
	require.Eventually(t, func() bool { return h.notices.count() == 2 }, time.Second, time.Millisecond)
	assert.Len(t, h.store.snapshot(), 2)
	assert.Equal(t, Watching, h.reporter.State())
	h.reporter.Close()
}

func TestReporter_ClearFailureIsReturned(t *testing.T) {
	h := newHarness()
	h.store.clearErr = errors.New("db down")
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)

	wrote, err := h.reporter.Sync(ctx, "d-1", false)

	assert.True(t, wrote)
	assert.Error(t, err)
	assert.Equal(t, 1, h.notices.count())
}

func TestReporter_CloseReleasesWithoutWrite(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)
	h.push(t, 30.1, 31.1)

	h.reporter.Close()
	h.reporter.Close()
	wrote, err := h.reporter.Sync(ctx, "d-1", false)

	assert.NoError(t, err)
	assert.False(t, wrote)
	assert.Empty(t, h.store.snapshot())
	assert.True(t, h.ticker.isStopped())
	assert.Equal(t, Idle, h.reporter.State())
}

func TestReporter_NoSource(t *testing.T) {
	n := &notices{}
	r := New(&fakeStore{}, nil, n)

	_, err := r.Sync(context.Background(), "d-1", true)

	assert.ErrorIs(t, err, geolocation.ErrUnsupported)
	assert.Equal(t, Idle, r.State())
	assert.Equal(t, 1, n.count())
}

func TestReporter_SourceClosedKeepsState(t *testing.T) {
	h := newHarness()
	_, err := h.reporter.Sync(context.Background(), "d-1", true)
	require.NoError(t, err)

	h.feed.Close()

	require.Eventually(t, func() bool { return h.notices.count() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, Watching, h.reporter.State())
	h.reporter.Close()
}

func TestManager(t *testing.T) {
	t.Run("attach replaces previous device", func(t *testing.T) {
		store := &fakeStore{}
		m := NewManager(store)
		first := m.Attach("d-1", geolocation.NewFeed(nil), nil)
		second := m.Attach("d-1", geolocation.NewFeed(nil), nil)

		got, ok := m.Get("d-1")
		require.True(t, ok)
		assert.Same(t, second, got)
		assert.Equal(t, 1, m.Count())

		wrote, err := first.Sync(context.Background(), "d-1", true)
		assert.NoError(t, err)
		assert.False(t, wrote)
		assert.Equal(t, Idle, first.State())
	})

	t.Run("sync without device is not handled", func(t *testing.T) {
		m := NewManager(&fakeStore{})

		handled, err := m.Sync(context.Background(), "d-1", false)

		assert.NoError(t, err)
		assert.False(t, handled)
	})

	t.Run("sync reaches attached reporter", func(t *testing.T) {
		store := &fakeStore{}
		ticker := &manualTicker{ch: make(chan time.Time)}
		m := NewManager(store, WithTicker(func(time.Duration) Ticker { return ticker }))
		r := m.Attach("d-1", geolocation.NewFeed(nil), nil)

		_, err := m.Sync(context.Background(), "d-1", true)
		require.NoError(t, err)
		assert.Equal(t, Watching, r.State())

		handled, err := m.Sync(context.Background(), "d-1", false)
		require.NoError(t, err)
		assert.True(t, handled)
		assert.Equal(t, []write{{driverID: "d-1", clear: true}}, store.snapshot())
	})

	t.Run("forget stops without write", func(t *testing.T) {
		store := &fakeStore{}
		ticker := &manualTicker{ch: make(chan time.Time)}
		m := NewManager(store, WithTicker(func(time.Duration) Ticker { return ticker }))
		r := m.Attach("d-1", geolocation.NewFeed(nil), nil)
		_, err := m.Sync(context.Background(), "d-1", true)
		require.NoError(t, err)

		m.Forget(context.Background(), "d-1")

		assert.Equal(t, Idle, r.State())
		assert.Empty(t, store.snapshot())
	})

	t.Run("detach of stale reporter keeps current", func(t *testing.T) {
		m := NewManager(&fakeStore{})
		first := m.Attach("d-1", geolocation.NewFeed(nil), nil)
		second := m.Attach("d-1", geolocation.NewFeed(nil), nil)

		m.Detach("d-1", first)
		got, ok := m.Get("d-1")
		assert.True(t, ok)
		assert.Same(t, second, got)

		m.Detach("d-1", second)
		_, ok = m.Get("d-1")
		assert.False(t, ok)
	})

	t.Run("close all", func(t *testing.T) {
		m := NewManager(&fakeStore{})
		m.Attach("d-1", geolocation.NewFeed(nil), nil)
		m.Attach("d-2", geolocation.NewFeed(nil), nil)

		m.CloseAll()

		assert.Equal(t, 0, m.Count())
	})
}

func TestReporter_OverlappingOfflineSignalsClearOnce(t *testing.T) {
	// Arrange
	h := newHarness()
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)
	h.push(t, 30.1, 31.1)

	// Act
	var wg sync.WaitGroup
	handled := make([]bool, 4)
	for i := range handled {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handled[i], _ = h.reporter.Sync(ctx, "d-1", false)
		}(i)
	}
	wg.Wait()

	// Assert
	for _, ok := range handled {
		assert.True(t, ok)
	}
	assert.Equal(t, []write{{driverID: "d-1", clear: true}}, h.store.snapshot())
}

func TestReporter_ClearedStateResetsWhenGoingOnline(t *testing.T) {
	tests := []struct {
		name        string
		source      geolocation.Watcher
		wantHandled bool
	}{
		{
			name:        "watch restarts and clears again",
			source:      geolocation.NewFeed(nil),
			wantHandled: true,
		},
		{
			name:        "failed restart leaves the write to the caller",
			source:      nil,
			wantHandled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			h := newHarness()
			ctx := context.Background()
			_, err := h.reporter.Sync(ctx, "d-1", true)
			require.NoError(t, err)
			_, err = h.reporter.Sync(ctx, "d-1", false)
			require.NoError(t, err)
			h.reporter.source = tt.source
			_, _ = h.reporter.Sync(ctx, "d-1", true)

			// Act
			handled, err := h.reporter.Sync(ctx, "d-1", false)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantHandled, handled)
		})
	}
}

func TestReporter_OtherDriverIsNotCleared(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.reporter.Sync(ctx, "d-1", true)
	require.NoError(t, err)
	_, err = h.reporter.Sync(ctx, "d-1", false)
	require.NoError(t, err)

	handled, err := h.reporter.Sync(ctx, "d-2", false)

	require.NoError(t, err)
	assert.False(t, handled)
}

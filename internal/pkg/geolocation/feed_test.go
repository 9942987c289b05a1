package geolocation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fix(lat, lng float64) models.Position {
	return models.Position{Coordinates: models.Coordinates{Latitude: lat, Longitude: lng}}
}

func TestFeed_LocateResolvesOnPush(t *testing.T) {
	var requested atomic.Int32
	feed := NewFeed(func(Options) error {
		requested.Add(1)
		return nil
	})

	go func() {
		for requested.Load() == 0 {
			time.Sleep(time.Millisecond)
		}
		feed.Push(fix(30.0444, 31.2357))
	}()

	pos, err := feed.Locate(context.Background(), Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 30.0444, pos.Latitude)
	assert.False(t, pos.Timestamp.IsZero())
}

func TestFeed_LocateTimeout(t *testing.T) {
	feed := NewFeed(nil)

	_, err := feed.Locate(context.Background(), Options{Timeout: 20 * time.Millisecond})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.True(t, IsUnavailable(err))
}

func TestFeed_LocateClientError(t *testing.T) {
	var feed *Feed
	feed = NewFeed(func(Options) error {
		go feed.Fail(ErrPermissionDenied)
		return nil
	})

	_, err := feed.Locate(context.Background(), Options{Timeout: time.Second})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFeed_LocateRequestFailure(t *testing.T) {
	feed := NewFeed(func(Options) error { return errors.New("socket closed") })

	_, err := feed.Locate(context.Background(), Options{Timeout: time.Second})
	assert.ErrorIs(t, err, ErrPositionLost)
}

func TestFeed_LocateMaximumAge(t *testing.T) {
	feed := NewFeed(nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	feed.now = func() time.Time { return now }

	p := fix(30, 31)
	p.Timestamp = now.Add(-5 * time.Second)
	feed.Push(p)

	pos, err := feed.Locate(context.Background(), Options{MaximumAge: 10 * time.Second, Timeout: 10 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, 30.0, pos.Latitude)

	_, err = feed.Locate(context.Background(), Options{MaximumAge: 0, Timeout: 10 * time.Millisecond})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestFeed_WatchKeepsNewest(t *testing.T) {
	feed := NewFeed(nil)
	w, err := feed.Watch(Options{HighAccuracy: true})
	require.NoError(t, err)

	feed.Push(fix(1, 1))
	feed.Push(fix(2, 2))

	got := <-w.C()
	assert.Equal(t, 2.0, got.Latitude)

	w.Stop()
	w.Stop()
	_, open := <-w.C()
	assert.False(t, open)
}

func TestFeed_WatchFreshOnlyDoesNotReplay(t *testing.T) {
	feed := NewFeed(nil)
	feed.Push(fix(1, 1))

	w, err := feed.Watch(Options{MaximumAge: 0})
	require.NoError(t, err)

	select {
	case <-w.C():
		t.Fatal("cached fix replayed to a fresh-only watch")
	default:
	}
}

func TestFeed_CloseEndsWatchesAndReads(t *testing.T) {
	feed := NewFeed(nil)
	w, err := feed.Watch(Options{})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := feed.Locate(context.Background(), Options{Timeout: time.Second})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	feed.Close()
	feed.Close()

	_, open := <-w.C()
	assert.False(t, open)
	assert.ErrorIs(t, <-done, ErrSourceClosed)

	_, err = feed.Watch(Options{})
	assert.ErrorIs(t, err, ErrSourceClosed)
	w.Stop()
}

func TestStatic(t *testing.T) {
	pos, err := Static{Position: &models.Coordinates{Latitude: 30, Longitude: 31}}.Locate(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 31.0, pos.Longitude)

	_, err = Static{}.Locate(context.Background(), Options{})
	assert.ErrorIs(t, err, models.ErrLocationUnsupported)

	_, err = Static{Position: &models.Coordinates{Latitude: 91}}.Locate(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrPositionLost)
}

func TestErrorFromCode(t *testing.T) {
	assert.ErrorIs(t, ErrorFromCode(CodePermissionDenied), ErrPermissionDenied)
	assert.ErrorIs(t, ErrorFromCode(CodeTimeout), ErrTimeout)
	assert.ErrorIs(t, ErrorFromCode(CodeUnsupported), ErrUnsupported)
	assert.ErrorIs(t, ErrorFromCode("whatever"), ErrPositionLost)
}

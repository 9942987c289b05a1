// Package reporter keeps an online driver's stored position fresh.
//
// A Reporter watches the driver's device position and persists the last known
// fix on a fixed interval. Position updates never write directly. Going offline
// stops the watch and the ticker, then issues exactly one clearing write.
package reporter

import (
	"context"
	"sync"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// DefaultInterval is the period between location writes
const DefaultInterval = 30 * time.Second

// WatchOptions are the device watch controls: high accuracy, always fresh
var WatchOptions = geolocation.Options{HighAccuracy: true, MaximumAge: 0, Timeout: 10 * time.Second}

// State of a reporter
type State int

const (
	Idle State = iota
	Watching
)

func (s State) String() string {
	if s == Watching {
		return "watching"
	}
	return "idle"
}

// LocationStore persists reported positions
type LocationStore interface {
	UpdateLocation(ctx context.Context, driverID string, lat, lng float64, at time.Time) error
	// ClearLocation is the terminal write when the driver goes offline
	ClearLocation(ctx context.Context, driverID string, at time.Time) error
}

// Notifier shows non-fatal problems to the driver
type Notifier interface {
	Notify(notice models.WSNotice)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(models.WSNotice)

func (f NotifierFunc) Notify(n models.WSNotice) { f(n) }

// Notices shown to the driver
var (
	NoticeWriteFailed = models.WSNotice{
		Title:   "خطأ في تحديث الموقع",
		Message: "لم نتمكن من حفظ موقعك الحالي في قاعدة البيانات.",
		Variant: "destructive",
	}
	NoticeUnsupported = models.WSNotice{
		Title:   "تحديد الموقع غير مدعوم",
		Message: "متصفحك لا يدعم خدمة تحديد المواقع.",
		Variant: "destructive",
	}
	NoticeSourceLost = models.WSNotice{
		Title:   "خطأ في تحديد الموقع",
		Message: "لا يمكن الحصول على موقعك الحالي.",
		Variant: "destructive",
	}
)

// Ticker is the interval timer driving location writes
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// Option configures a Reporter
type Option func(*Reporter)

// WithInterval sets the write interval
func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithTicker replaces the interval timer factory
func WithTicker(fn func(time.Duration) Ticker) Option {
	return func(r *Reporter) { r.newTicker = fn }
}

// WithClock replaces the write timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// Reporter is the per-driver presence state machine
type Reporter struct {
	mu        sync.Mutex
	store     LocationStore
	source    geolocation.Watcher
	notifier  Notifier
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	now       func() time.Time

	state    State
	driverID string
	// cleared is set once the clearing write for driverID succeeded and
	// reset by the next request to go online
	cleared bool
	cancel   context.CancelFunc
	done     chan struct{}
	closed   bool

	posMu sync.Mutex
	last  *models.Position
}

// New creates an idle reporter. source and notifier may be nil.
func New(store LocationStore, source geolocation.Watcher, notifier Notifier, opts ...Option) *Reporter {
	r := &Reporter{
		store:     store,
		source:    source,
		notifier:  notifier,
		interval:  DefaultInterval,
		newTicker: newTimeTicker,
		now:       models.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reporter) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// LastKnown returns the newest fix seen by the running watch
func (r *Reporter) LastKnown() (models.Position, bool) {
	r.posMu.Lock()
	defer r.posMu.Unlock()
	if r.last == nil {
		return models.Position{}, false
	}
	return *r.last, true
}

func (r *Reporter) setLast(pos *models.Position) {
	r.posMu.Lock()
	r.last = pos
	r.posMu.Unlock()
}

// Sync moves the state machine to match the session: Watching while a driver
// identity is known and online, Idle otherwise. Leaving Watching with the
// identity still known issues the clearing write. handled reports whether the
// driver's clearing write is owned by the reporter: it ran now, or it already
// ran for the same driver and nothing went online since.
func (r *Reporter) Sync(ctx context.Context, driverID string, online bool) (handled bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false, nil
	}

	if driverID != "" && online {
		r.cleared = false
		if r.state == Watching && r.driverID == driverID {
			return false, nil
		}
		r.stopLocked()
		return false, r.startLocked(driverID)
	}

	wasWatching := r.state == Watching
	r.stopLocked()
	if !wasWatching {
		already := r.cleared && driverID != "" && r.driverID == driverID
		r.driverID = driverID
		return already, nil
	}
	r.driverID = driverID
	r.cleared = false
	if driverID == "" {
		return false, nil
	}

	if err := r.store.ClearLocation(ctx, driverID, r.now()); err != nil {
		logger.WarnCtx(ctx, "Failed to clear driver location",
			logger.String("driver_id", driverID),
			logger.ErrorField(err))
		r.notify(NoticeWriteFailed)
		return true, err
	}
	r.cleared = true
	return true, nil
}

// Close releases the watch and the ticker without writing. Safe to call more than once.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.stopLocked()
}

func (r *Reporter) startLocked(driverID string) error {
	if r.source == nil {
		r.notify(NoticeUnsupported)
		return geolocation.ErrUnsupported
	}
	watch, err := r.source.Watch(WatchOptions)
	if err != nil {
		r.notify(NoticeUnsupported)
		return err
	}

	ticker := r.newTicker(r.interval)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	r.setLast(nil)
	r.state = Watching
	r.driverID = driverID
	r.cancel = cancel
	r.done = done

	go r.loop(ctx, driverID, watch, ticker, done)

	logger.Info("Location reporting started",
		logger.String("driver_id", driverID),
		logger.Duration("interval", r.interval))
	return nil
}

// stopLocked cancels the loop and waits for it, so no tick can write afterwards
func (r *Reporter) stopLocked() {
	if r.state != Watching {
		return
	}
	r.cancel()
	<-r.done
	r.state = Idle
	r.cancel = nil
	r.done = nil

	logger.Info("Location reporting stopped", logger.String("driver_id", r.driverID))
}

func (r *Reporter) loop(ctx context.Context, driverID string, watch geolocation.Watch, ticker Ticker, done chan struct{}) {
	defer close(done)
	defer watch.Stop()
	defer ticker.Stop()

	positions := watch.C()
	for {
		select {
		case <-ctx.Done():
			return

		case pos, ok := <-positions:
			if !ok {
				positions = nil
				r.notify(NoticeSourceLost)
				continue
			}
			p := pos
			r.setLast(&p)

		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			last, ok := r.LastKnown()
			if !ok {
				continue
			}
			err := r.store.UpdateLocation(ctx, driverID, last.Latitude, last.Longitude, r.now())
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("Failed to store driver location",
					logger.String("driver_id", driverID),
					logger.ErrorField(err))
				r.notify(NoticeWriteFailed)
			}
		}
	}
}

func (r *Reporter) notify(n models.WSNotice) {
	if r.notifier != nil {
		r.notifier.Notify(n)
	}
}

package geolocation

import (
	"context"
	"sync"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

type locateResult struct {
	pos models.Position
	err error
}

// Feed is a position source driven by a connected client that pushes fixes.
// It serves both one-shot reads and continuous watches.
type Feed struct {
	mu      sync.Mutex
	last    *models.Position
	watches map[*feedWatch]struct{}
	waiters map[chan locateResult]struct{}
	request func(Options) error
	closed  bool
	now     func() time.Time
}

// NewFeed creates a feed. request, when set, asks the client for a fresh fix
// on every one-shot read.
func NewFeed(request func(Options) error) *Feed {
	return &Feed{
		watches: make(map[*feedWatch]struct{}),
		waiters: make(map[chan locateResult]struct{}),
		request: request,
		now:     models.Now,
	}
}

// Push delivers a fix from the client to every watch and pending read
func (f *Feed) Push(pos models.Position) {
	if pos.Timestamp.IsZero() {
		pos.Timestamp = f.now()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	p := pos
	f.last = &p
	for w := range f.watches {
		w.offer(pos)
	}
	for ch := range f.waiters {
		ch <- locateResult{pos: pos}
		delete(f.waiters, ch)
	}
}

// Fail resolves pending one-shot reads with err. Watches keep running.
func (f *Feed) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.waiters {
		ch <- locateResult{err: err}
		delete(f.waiters, ch)
	}
}

// Last returns the most recent fix, if any
func (f *Feed) Last() (models.Position, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return models.Position{}, false
	}
	return *f.last, true
}

// Locate waits for the next fix, or returns a cached one no older than opts.MaximumAge
func (f *Feed) Locate(ctx context.Context, opts Options) (models.Position, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return models.Position{}, ErrSourceClosed
	}
	if opts.MaximumAge > 0 && f.last != nil && f.now().Sub(f.last.Timestamp) <= opts.MaximumAge {
		pos := *f.last
		f.mu.Unlock()
		return pos, nil
	}
	ch := make(chan locateResult, 1)
	f.waiters[ch] = struct{}{}
	request := f.request
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.waiters, ch)
		f.mu.Unlock()
	}()

	if request != nil {
		if err := request(opts); err != nil {
			return models.Position{}, ErrPositionLost
		}
	}

	var timeout <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res := <-ch:
		return res.pos, res.err
	case <-timeout:
		return models.Position{}, ErrTimeout
	case <-ctx.Done():
		return models.Position{}, ErrTimeout
	}
}

// Watch subscribes to fixes. A cached fix no older than opts.MaximumAge is replayed first.
func (f *Feed) Watch(opts Options) (Watch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, ErrSourceClosed
	}

	w := &feedWatch{feed: f, ch: make(chan models.Position, 1)}
	if opts.MaximumAge > 0 && f.last != nil && f.now().Sub(f.last.Timestamp) <= opts.MaximumAge {
		w.ch <- *f.last
	}
	f.watches[w] = struct{}{}
	return w, nil
}

// Close ends every watch and fails pending reads
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for w := range f.watches {
		close(w.ch)
		delete(f.watches, w)
	}
	for ch := range f.waiters {
		ch <- locateResult{err: ErrSourceClosed}
		delete(f.waiters, ch)
	}
}

type feedWatch struct {
	feed *Feed
	ch   chan models.Position
}

func (w *feedWatch) C() <-chan models.Position {
	return w.ch
}

// offer keeps only the newest undelivered fix; caller holds the feed lock
func (w *feedWatch) offer(pos models.Position) {
	select {
	case w.ch <- pos:
	default:
		select {
		case <-w.ch:
		default:
		}
		w.ch <- pos
	}
}

// Stop unsubscribes; safe to call more than once
func (w *feedWatch) Stop() {
	w.feed.mu.Lock()
	defer w.feed.mu.Unlock()
	if _, ok := w.feed.watches[w]; ok {
		delete(w.feed.watches, w)
		close(w.ch)
	}
}

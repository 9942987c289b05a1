package reporter

import (
	"context"
	"sync"

	"github.com/mashaweer/mashaweer/internal/pkg/geolocation"
)

// Manager tracks the reporter of every connected driver device, so status
// changes made over HTTP reach the reporter owned by the driver's WebSocket.
type Manager struct {
	mu        sync.Mutex
	store     LocationStore
	opts      []Option
	reporters map[string]*Reporter
}

// NewManager creates a manager whose reporters write to store
func NewManager(store LocationStore, opts ...Option) *Manager {
	return &Manager{
		store:     store,
		opts:      opts,
		reporters: make(map[string]*Reporter),
	}
}

// Attach registers a reporter for a newly connected device. A previous device
// of the same driver is closed without writing.
func (m *Manager) Attach(driverID string, source geolocation.Watcher, notifier Notifier) *Reporter {
	r := New(m.store, source, notifier, m.opts...)

	m.mu.Lock()
	prev := m.reporters[driverID]
	m.reporters[driverID] = r
	m.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
	return r
}

// Detach closes r and forgets it if it is still the driver's current reporter
func (m *Manager) Detach(driverID string, r *Reporter) {
	m.mu.Lock()
	if m.reporters[driverID] == r {
		delete(m.reporters, driverID)
	}
	m.mu.Unlock()

	r.Close()
}

// Get returns the current reporter of a driver
func (m *Manager) Get(driverID string) (*Reporter, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reporters[driverID]
	return r, ok
}

// Sync forwards an online status change to the driver's reporter.
// handled is true when the reporter issued the terminal clearing write.
func (m *Manager) Sync(ctx context.Context, driverID string, online bool) (handled bool, err error) {
	r, ok := m.Get(driverID)
	if !ok {
		return false, nil
	}
	return r.Sync(ctx, driverID, online)
}

// Forget drops the driver identity from its reporter, stopping it without a write
func (m *Manager) Forget(ctx context.Context, driverID string) {
	if r, ok := m.Get(driverID); ok {
		_, _ = r.Sync(ctx, "", false)
	}
}

// Count returns the number of attached devices
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reporters)
}

// CloseAll releases every reporter without writing
func (m *Manager) CloseAll() {
	m.mu.Lock()
	reporters := m.reporters
	m.reporters = make(map[string]*Reporter)
	m.mu.Unlock()

	for _, r := range reporters {
		r.Close()
	}
}

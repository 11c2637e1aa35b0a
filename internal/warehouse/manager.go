package warehouse

import (
	"context"
	"sync"
)

// Opener dials and authenticates a new warehouse session.
type Opener func(ctx context.Context) (Driver, error)

// Manager owns the single memoized warehouse handle for the process. The
// first Get opens a session; later calls return the same handle without
// re-authenticating. Concurrent first calls are serialized so exactly one
// session is opened and every caller converges on it.
//
// The slot is deliberately a mutex-guarded optional rather than a sync.Once:
// Invalidate must be able to clear it after a detected failure so the next
// Get re-opens.
type Manager struct {
	mu     sync.Mutex
	opener Opener
	driver Driver
}

// NewManager creates a Manager that opens sessions with the given Opener.
func NewManager(opener Opener) *Manager {
	return &Manager{opener: opener}
}

// Get returns the memoized handle, opening it on first use. A failed open
// leaves the slot empty, so the next Get tries again.
func (m *Manager) Get(ctx context.Context) (Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver != nil {
		return m.driver, nil
	}

	drv, err := m.opener(ctx)
	if err != nil {
		return nil, err
	}
	m.driver = drv
	return drv, nil
}

// Invalidate closes and discards the current handle, if any. Callers use it
// after a connection-loss error before retrying.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver != nil {
		_ = m.driver.Close()
		m.driver = nil
	}
}

// Close tears down the handle on process shutdown.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver == nil {
		return nil
	}
	err := m.driver.Close()
	m.driver = nil
	return err
}

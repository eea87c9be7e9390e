// Package autolock re-locks an unlocked database after a period of
// inactivity, so cached unlock data does not stay fresh forever.
package autolock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrival/quickvault/internal/logging"
)

// LockFunc is invoked once when the idle deadline passes. It runs on the
// monitor's goroutine and should hand off, not block.
type LockFunc func()

var ErrBadTimeout = errors.New("autolock: timeout must be positive")

// Monitor counts down from the last recorded activity and fires LockFunc
// when the configured idle interval elapses. Extend is safe from any
// goroutine; each call pushes the deadline out again.
type Monitor struct {
	timeout time.Duration
	lock    LockFunc
	log     logging.Logger

	mu       sync.Mutex
	deadline time.Time
}

func NewMonitor(timeout time.Duration, lock LockFunc, log logging.Logger) (*Monitor, error) {
	if timeout <= 0 {
		return nil, ErrBadTimeout
	}
	if lock == nil {
		return nil, errors.New("autolock: nil lock func")
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Monitor{timeout: timeout, lock: lock, log: log}, nil
}

// Extend records activity, moving the idle deadline out by the full timeout.
func (m *Monitor) Extend() {
	m.mu.Lock()
	m.deadline = time.Now().Add(m.timeout)
	m.mu.Unlock()
}

// Run watches the deadline until it passes or ctx is cancelled. It fires the
// lock callback at most once and then returns; callers run it on its own
// goroutine and restart it after the next unlock. Tick handling is O(1), a
// deadline comparison.
func (m *Monitor) Run(ctx context.Context) {
	m.Extend()

	ticker := time.NewTicker(m.tick())
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.mu.Lock()
			expired := now.After(m.deadline)
			m.mu.Unlock()
			if expired {
				m.log.Info(ctx, "idle timeout reached, locking database", "after", m.timeout)
				m.lock()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// tick keeps the check cadence proportional to the timeout without busy
// polling short ones or reacting sluggishly to long ones.
func (m *Monitor) tick() time.Duration {
	t := m.timeout / 10
	if t < 5*time.Millisecond {
		t = 5 * time.Millisecond
	}
	if t > time.Second {
		t = time.Second
	}
	return t
}

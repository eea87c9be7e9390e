// Package clipboard hands secrets to the system clipboard and takes them
// back: every copy starts a countdown that ends with the clipboard being
// overwritten, and the countdown's progress is observable by the UI.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrival/quickvault/internal/logging"
)

// Sink is the capability the platform clipboard implements. Injecting it
// keeps the guard testable without a real pasteboard.
type Sink interface {
	WriteString(text string) error
}

var (
	ErrNilSink     = errors.New("clipboard: nil sink")
	ErrBadInterval = errors.New("clipboard: intervals must be positive and tick must not exceed the clear interval")
)

// Progress is one observation of a running clear countdown.
type Progress struct {
	// Remaining is the fraction of the countdown left, in [0.0, 1.0],
	// non-increasing over the life of one countdown.
	Remaining float64

	// Deadline is the absolute time of full clearance, fixed at creation.
	Deadline time.Time
}

// Countdown is the observable handle for one scheduled clipboard wipe. Its
// progress channel closes when the countdown completes or is cancelled.
type Countdown struct {
	deadline time.Time

	mu       sync.Mutex
	closed   bool
	progress chan Progress

	stop     chan struct{}
	stopOnce sync.Once
}

const progressBuffer = 16

func newCountdown(deadline time.Time) *Countdown {
	return &Countdown{
		deadline: deadline,
		progress: make(chan Progress, progressBuffer),
		stop:     make(chan struct{}),
	}
}

// Progress returns the channel of fractional updates. Slow consumers miss
// intermediate values rather than stalling the timer.
func (c *Countdown) Progress() <-chan Progress { return c.progress }

// Deadline returns the absolute clearance time.
func (c *Countdown) Deadline() time.Time { return c.deadline }

// halt stops the ticking goroutine. Idempotent.
func (c *Countdown) halt() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// emit delivers a progress value unless the handle already completed.
func (c *Countdown) emit(p Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.progress <- p:
	default:
	}
}

// finish completes the handle. Idempotent, safe against concurrent emit.
func (c *Countdown) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.progress)
}

// Guard owns the clipboard. At most one countdown is active; a new copy
// supersedes the previous one and an explicit cancel clears immediately.
type Guard struct {
	sink       Sink
	clearAfter time.Duration
	tick       time.Duration
	log        logging.Logger

	mu     sync.Mutex
	active *Countdown
}

func New(sink Sink, clearAfter, tick time.Duration, log logging.Logger) (*Guard, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	if clearAfter <= 0 || tick <= 0 || tick > clearAfter {
		return nil, fmt.Errorf("%w: clearAfter=%v tick=%v", ErrBadInterval, clearAfter, tick)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Guard{sink: sink, clearAfter: clearAfter, tick: tick, log: log}, nil
}

// Copy writes secret to the clipboard and starts its clear countdown. Any
// previous countdown is superseded: cancelled without an intermediate clear,
// since the new value overwrites the old one anyway. Calling Copy with no
// countdown active behaves identically.
func (g *Guard) Copy(secret string) (*Countdown, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active != nil {
		g.active.halt()
		g.active.finish()
		g.active = nil
	}

	if err := g.sink.WriteString(secret); err != nil {
		return nil, fmt.Errorf("clipboard: write: %w", err)
	}

	cd := newCountdown(time.Now().Add(g.clearAfter))
	cd.emit(Progress{Remaining: 1.0, Deadline: cd.deadline})
	g.active = cd
	go g.run(cd)

	return cd, nil
}

// CancelPending stops any active countdown and clears the clipboard before
// returning. The clear is unconditional: callers invoke this when secrets
// must be dropped now, so an empty clipboard is the postcondition even when
// nothing was tracked. Safe to call at any time, including mid-tick.
func (g *Guard) CancelPending() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active != nil {
		g.active.halt()
		g.active.emit(Progress{Remaining: 0, Deadline: g.active.deadline})
		g.active.finish()
		g.active = nil
	}

	if err := g.sink.WriteString(""); err != nil {
		g.log.Warn(context.Background(), "clipboard clear failed", "error", err)
	}
}

func (g *Guard) run(cd *Countdown) {
	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for {
		select {
		case <-cd.stop:
			return
		case now := <-ticker.C:
			remaining := cd.deadline.Sub(now)
			if remaining <= 0 {
				g.expire(cd)
				return
			}
			cd.emit(Progress{
				Remaining: float64(remaining) / float64(g.clearAfter),
				Deadline:  cd.deadline,
			})
		}
	}
}

// expire wipes the clipboard at the deadline, unless the countdown was
// superseded or cancelled while this goroutine waited for the guard lock.
func (g *Guard) expire(cd *Countdown) {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-cd.stop:
		return
	default:
	}
	cd.halt()

	if err := g.sink.WriteString(""); err != nil {
		g.log.Warn(context.Background(), "clipboard clear failed", "error", err)
	}
	cd.emit(Progress{Remaining: 0, Deadline: cd.deadline})
	cd.finish()
	g.active = nil
}

package store

import (
	"fmt"
	"sync"
	"time"
)

const (
	ExpiredMessage = "Your seat reservation expired. The reservation has been cancelled."

	defaultTickInterval = time.Second
)

type CountdownOption func(*Countdown)

func WithTickInterval(d time.Duration) CountdownOption {
	return func(c *Countdown) {
		c.interval = d
	}
}

func WithClock(now func() time.Time) CountdownOption {
	return func(c *Countdown) {
		c.now = now
	}
}

// WithExpireHook registers fn to run after an expired hold has been cleared.
func WithExpireHook(fn func()) CountdownOption {
	return func(c *Countdown) {
		c.onExpire = fn
	}
}

// Countdown watches the reservation expiry. It runs while the store holds a
// ReservedUntil and, once that instant has passed, notifies the user, clears
// the reservation and stops, exactly once per hold. Remaining time is always
// derived from the absolute expiry so a delayed tick never drifts.
type Countdown struct {
	store    *ReservationStore
	notify   func(string)
	interval time.Duration
	now      func() time.Time
	onExpire func()

	mu      sync.Mutex
	stop    chan struct{}
	running bool
	closed  bool
}

func NewCountdown(store *ReservationStore, notify func(string), opts ...CountdownOption) *Countdown {
	c := &Countdown{
		store:    store,
		notify:   notify,
		interval: defaultTickInterval,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	store.Subscribe(c.onChange)
	c.onChange(store.Snapshot())

	return c
}

func (c *Countdown) onChange(snap ReservationSnapshot) {
	if snap.ReservedUntil != nil {
		c.start()
		return
	}

	c.halt()
}

func (c *Countdown) start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running || c.closed {
		return
	}

	stop := make(chan struct{})
	c.stop = stop
	c.running = true

	go c.run(stop)
}

func (c *Countdown) halt() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.haltLocked()
}

func (c *Countdown) haltLocked() {
	if !c.running {
		return
	}

	close(c.stop)
	c.stop = nil
	c.running = false
}

// Close stops the countdown for good.
func (c *Countdown) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.haltLocked()
}

func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

func (c *Countdown) run(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if c.tick(stop) {
				return
			}
		}
	}
}

func (c *Countdown) tick(stop chan struct{}) bool {
	c.mu.Lock()
	current := c.stop == stop
	c.mu.Unlock()

	if !current {
		return true
	}

	// Clearing the store halts this goroutine through onChange.
	if !c.store.ExpireIfBefore(c.now()) {
		return false
	}

	c.notify(ExpiredMessage)

	if c.onExpire != nil {
		c.onExpire()
	}

	return true
}

// Remaining is the time left on the current hold, zero when there is none.
func (c *Countdown) Remaining() time.Duration {
	snap := c.store.Snapshot()
	if snap.ReservedUntil == nil {
		return 0
	}

	remaining := snap.ReservedUntil.Sub(c.now())
	if remaining < 0 {
		return 0
	}

	return remaining
}

// TimeLeft formats Remaining as MM:SS, or "" when no hold is active.
func (c *Countdown) TimeLeft() string {
	snap := c.store.Snapshot()
	if snap.ReservedUntil == nil {
		return ""
	}

	return FormatTimeLeft(c.Remaining())
}

func FormatTimeLeft(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d / time.Second)

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

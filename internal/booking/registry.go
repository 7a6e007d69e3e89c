package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/concert-booking/internal/domain"
	"github.com/metinatakli/concert-booking/internal/store"
)

type RegistryOption func(*Registry)

func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.idleTimeout = d
	}
}

func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// WithCountdownOptions is passed to the countdown of every new session.
func WithCountdownOptions(opts ...store.CountdownOption) RegistryOption {
	return func(r *Registry) {
		r.countdownOpts = append(r.countdownOpts, opts...)
	}
}

// Registry owns the booking sessions of all browser sessions, keyed by the id
// kept in the browser session. Sessions idle for longer than the idle timeout
// are evicted by Run.
type Registry struct {
	client        domain.BookingClient
	logger        *slog.Logger
	metrics       *metrics
	idleTimeout   time.Duration
	now           func() time.Time
	countdownOpts []store.CountdownOption

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(client domain.BookingClient, logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		client:      client,
		logger:      logger,
		metrics:     newMetrics(),
		idleTimeout: 20 * time.Minute,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Session returns the session for id, creating it on first use.
func (r *Registry) Session(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = newSession(id, r.client, r.logger, r.metrics, r.now, r.countdownOpts...)
		r.sessions[id] = s
		r.metrics.sessions.Add(context.Background(), 1)
	}

	s.touch()

	return s
}

func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]

	return s, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.close()
		r.metrics.sessions.Add(context.Background(), -1)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the idle timeout and reports how
// many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.close()
	}

	if len(idle) > 0 {
		r.metrics.sessions.Add(context.Background(), int64(-len(idle)))
		r.logger.Info("evicted idle booking sessions", "count", len(idle))
	}

	return len(idle)
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

package dictsync

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Factory builds the orchestrator for a session key.
type Factory func(key string) *Orchestrator

// Registry hands out one Orchestrator per session key and evicts those left
// idle. Evicted sessions lose only in-memory state; their cache entry stays
// in the session store.
type Registry struct {
	log         *slog.Logger
	factory     Factory
	idleTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*Orchestrator
}

// NewRegistry creates a Registry. Call Run to start idle eviction.
func NewRegistry(logger *slog.Logger, factory Factory, idleTimeout time.Duration) *Registry {
	return &Registry{
		log:         logger.With("service", "dictsync.registry"),
		factory:     factory,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]*Orchestrator),
	}
}

// Get returns the orchestrator for key, creating it on first use. The
// orchestrator counts as used from this moment, so a Sweep racing the
// caller's next call cannot evict it.
func (r *Registry) Get(key string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.sessions[key]
	if !ok {
		o = r.factory(key)
		r.sessions[key] = o
	}
	o.touch()
	return o
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run evicts idle orchestrators every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.log.DebugContext(ctx, "evicted idle sessions", slog.Int("count", n))
			}
		}
	}
}

// Sweep evicts orchestrators idle longer than the timeout as of now and
// reports how many were removed. Running syncs are never evicted.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for key, o := range r.sessions {
		lastUsed, running := o.idleSince()
		if running || now.Sub(lastUsed) <= r.idleTimeout {
			continue
		}
		delete(r.sessions, key)
		evicted++
	}
	return evicted
}

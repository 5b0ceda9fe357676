package dictsync

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out successive lookups against the external services: Wait
// blocks until the interval has passed since the last Done. The interval
// counts from the moment a result is recorded, so slow lookups do not eat
// into the pause. A Pacer is not safe for concurrent use.
type Pacer struct {
	interval time.Duration
	lim      *rate.Limiter
}

// NewPacer returns a pacer holding back each lookup interval after the
// previous one finished. The first Wait returns immediately. interval <= 0
// never waits.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the next lookup may start or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.lim == nil {
		return ctx.Err()
	}
	return p.lim.Wait(ctx)
}

// Done records that a lookup result was applied; the next Wait releases a
// full interval later.
func (p *Pacer) Done() {
	if p.interval <= 0 {
		return
	}
	lim := rate.NewLimiter(rate.Every(p.interval), 1)
	lim.AllowN(time.Now(), 1)
	p.lim = lim
}

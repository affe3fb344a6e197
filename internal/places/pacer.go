package places

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a fixed minimum interval between consecutive calls.
//
// The interval is constant; there is no backoff when the service pushes back.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer spacing calls by interval. A zero or negative
// interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the interval since the previous call elapsed.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

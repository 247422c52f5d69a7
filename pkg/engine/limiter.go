package engine

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiterPool hands out one token bucket per scope so one chatty account
// cannot starve another's remote budget.
type limiterPool struct {
	mu    sync.Mutex
	rps   float64
	burst int
	m     map[string]*rate.Limiter
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	return &limiterPool{rps: rps, burst: burst, m: map[string]*rate.Limiter{}}
}

func (p *limiterPool) get(scopeID string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.m[scopeID]
	if !ok {
		l = rate.NewLimiter(rate.Limit(p.rps), p.burst)
		p.m[scopeID] = l
	}
	return l
}

package content

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DeliveryGuard rejects prompt deliveries to a tab that arrive within the
// cooldown window of the previous accepted one. Each tab gets its own token
// bucket holding a single token that refills once per cooldown.
//
// DeliveryGuard is safe for concurrent use.
type DeliveryGuard struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	cooldown time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewDeliveryGuard returns a guard with the given cooldown window.
func NewDeliveryGuard(cooldown time.Duration) *DeliveryGuard {
	return &DeliveryGuard{
		limiters: make(map[string]*rate.Limiter),
		cooldown: cooldown,
		Now:      time.Now,
	}
}

// Allow reports whether a delivery to tabID may proceed and, if so,
// records it.
func (g *DeliveryGuard) Allow(tabID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	limiter, ok := g.limiters[tabID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(g.cooldown), 1)
		g.limiters[tabID] = limiter
	}
	return limiter.AllowN(g.Now(), 1)
}

// Forget clears the delivery history of tabID.
func (g *DeliveryGuard) Forget(tabID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.limiters, tabID)
}

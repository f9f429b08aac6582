package content_test

import (
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/brief/content"
	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestDeliveryGuard_Allow(t *testing.T) {
	t.Parallel()

	t.Run("rejects within cooldown and accepts after it", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		g := content.NewDeliveryGuard(2 * time.Second)
		g.Now = clock.Now

		assert.True(t, g.Allow("tab-1"))

		clock.Advance(500 * time.Millisecond)
		assert.False(t, g.Allow("tab-1"))

		clock.Advance(1600 * time.Millisecond)
		assert.True(t, g.Allow("tab-1"))
	})

	t.Run("tracks tabs independently", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		g := content.NewDeliveryGuard(2 * time.Second)
		g.Now = clock.Now

		assert.True(t, g.Allow("tab-1"))
		assert.True(t, g.Allow("tab-2"))
		assert.False(t, g.Allow("tab-1"))
	})
	t.Run("forget clears history", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		g := content.NewDeliveryGuard(2 * time.Second)
		g.Now = clock.Now

		assert.True(t, g.Allow("tab-1"))
		g.Forget("tab-1")
		assert.True(t, g.Allow("tab-1"))
	})
}

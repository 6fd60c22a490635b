package presence

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func newTestTracker(ttl time.Duration) (*Tracker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}
	tracker := NewTracker(ttl)
	tracker.now = clock.Now
	return tracker, clock
}

func TestTypingWindow(t *testing.T) {
	tracker, clock := newTestTracker(DefaultTTL)

	tracker.Touch("vendor-1-rfp-9", "alice")

	clock.Advance(3000 * time.Millisecond)
	assert.Equal(t, []string{"alice"}, tracker.Typing("vendor-1-rfp-9"),
		"name should still be typing at t=3000ms")

	clock.Advance(1000 * time.Millisecond)
	tracker.Sweep()
	assert.Empty(t, tracker.Typing("vendor-1-rfp-9"),
		"name should be gone at t=4000ms after a sweep")
}

func TestTouchRefreshesWindow(t *testing.T) {
	tracker, clock := newTestTracker(DefaultTTL)

	tracker.Touch("ch", "bob")
	clock.Advance(3 * time.Second)
	tracker.Touch("ch", "bob")
	clock.Advance(3 * time.Second)

	assert.Equal(t, []string{"bob"}, tracker.Typing("ch"))
}

func TestChannelsAreIndependent(t *testing.T) {
	tracker, _ := newTestTracker(DefaultTTL)

	tracker.Touch("ch-a", "alice")
	tracker.Touch("ch-b", "bob")

	assert.Equal(t, []string{"alice"}, tracker.Typing("ch-a"))
	assert.Equal(t, []string{"bob"}, tracker.Typing("ch-b"))
	assert.Empty(t, tracker.Typing("ch-c"))
}

func TestSweepEvictsOnlyStaleEntries(t *testing.T) {
	tracker, clock := newTestTracker(DefaultTTL)

	tracker.Touch("ch", "old")
	clock.Advance(2 * time.Second)
	tracker.Touch("ch", "fresh")
	clock.Advance(2 * time.Second)

	evicted := tracker.Sweep()
	assert.Equal(t, 1, evicted)
	assert.Equal(t, []string{"fresh"}, tracker.Typing("ch"))
}

func TestEmptyInputsIgnored(t *testing.T) {
	tracker, _ := newTestTracker(DefaultTTL)

	tracker.Touch("", "alice")
	tracker.Touch("ch", "")

	assert.Empty(t, tracker.Typing("ch"))
	assert.Zero(t, tracker.Sweep())
}

func TestConcurrentTouches(t *testing.T) {
	tracker := NewTracker(DefaultTTL)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.Touch("ch", fmt.Sprintf("user-%d", i))
			tracker.Typing("ch")
			tracker.Sweep()
		}(i)
	}
	wg.Wait()

	assert.Len(t, tracker.Typing("ch"), 20)
}

// Package presence keeps the "who is typing" indicator state. It is a
// per-channel expiring set fed by the real-time channel (or the HTTP
// fallback), swept on an interval so stale names disappear even when no
// new events arrive.
package presence

import (
	"sort"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a participant counts as typing after their
	// last signal.
	DefaultTTL = 3500 * time.Millisecond

	// DefaultSweepInterval is how often stale entries are evicted.
	DefaultSweepInterval = 1500 * time.Millisecond
)

// Tracker maps channel key -> participant name -> last-seen time. Safe for
// concurrent use; signals arrive from websocket and HTTP handler goroutines.
type Tracker struct {
	mu       sync.RWMutex
	channels map[string]map[string]time.Time
	ttl      time.Duration

	// now is swappable for tests
	now func() time.Time
}

// NewTracker creates a tracker with the given typing TTL. A non-positive
// ttl falls back to DefaultTTL.
func NewTracker(ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tracker{
		channels: make(map[string]map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Touch records a typing signal for name on the channel.
func (t *Tracker) Touch(channelKey, name string) {
	if channelKey == "" || name == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ch, ok := t.channels[channelKey]
	if !ok {
		ch = make(map[string]time.Time)
		t.channels[channelKey] = ch
	}
	ch[name] = t.now()
}

// Typing returns the names currently typing on the channel, sorted for
// stable output.
func (t *Tracker) Typing(channelKey string) []string {
	cutoff := t.now().Add(-t.ttl)

	t.mu.RLock()
	defer t.mu.RUnlock()

	ch, ok := t.channels[channelKey]
	if !ok {
		return nil
	}

	var names []string
	for name, lastSeen := range ch {
		if lastSeen.After(cutoff) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Sweep evicts entries older than the TTL and drops empty channels.
// Returns the number of entries evicted.
func (t *Tracker) Sweep() int {
	cutoff := t.now().Add(-t.ttl)

	t.mu.Lock()
	defer t.mu.Unlock()

	evicted := 0
	for key, ch := range t.channels {
		for name, lastSeen := range ch {
			if !lastSeen.After(cutoff) {
				delete(ch, name)
				evicted++
			}
		}
		if len(ch) == 0 {
			delete(t.channels, key)
		}
	}
	return evicted
}

package realtime

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Handler processes a real-time event. A handler error does not stop other
// handlers; the failure is logged and fan-out continues, matching the
// degrade-silently posture of the presence feed.
type Handler func(ctx context.Context, evt *Event) error

// Dispatcher routes real-time events to registered handlers. It is the
// in-process stand-in for the external pub/sub provider: handlers are the
// websocket hub, the presence tracker, and anything else that watches a
// channel.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Type][]namedHandler
	logger   *zap.Logger

	wg     sync.WaitGroup
	closed atomic.Bool
}

type namedHandler struct {
	name    string
	handler Handler
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Type][]namedHandler),
		logger:   logger,
	}
}

// Subscribe registers a named handler for an event type
func (d *Dispatcher) Subscribe(eventType Type, name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], namedHandler{
		name:    name,
		handler: handler,
	})
}

// Unsubscribe removes a handler by name
func (d *Dispatcher) Unsubscribe(eventType Type, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.handlers[eventType][:0]
	for _, nh := range d.handlers[eventType] {
		if nh.name != name {
			kept = append(kept, nh)
		}
	}
	d.handlers[eventType] = kept
}

// Publish delivers the event to all handlers for its type, in registration
// order, synchronously.
func (d *Dispatcher) Publish(ctx context.Context, evt *Event) error {
	if d.closed.Load() {
		return fmt.Errorf("dispatcher is closed")
	}
	if !evt.Type.IsValid() {
		return fmt.Errorf("invalid event type: %s", evt.Type)
	}

	d.mu.RLock()
	handlers := make([]namedHandler, len(d.handlers[evt.Type]))
	copy(handlers, d.handlers[evt.Type])
	d.mu.RUnlock()

	for _, nh := range handlers {
		if err := nh.handler(ctx, evt); err != nil {
			d.logger.Warn("Realtime handler failed",
				zap.String("handler", nh.name),
				zap.String("event_type", evt.Type.String()),
				zap.String("channel_key", evt.ChannelKey),
				zap.Error(err))
		}
	}
	return nil
}

// PublishAsync delivers the event without waiting for handlers
func (d *Dispatcher) PublishAsync(ctx context.Context, evt *Event) {
	if d.closed.Load() {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		_ = d.Publish(ctx, evt)
	}()
}

// HandlerCount returns the number of handlers for an event type
func (d *Dispatcher) HandlerCount(eventType Type) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[eventType])
}

// Close stops accepting events and waits for async deliveries to finish
func (d *Dispatcher) Close() error {
	d.closed.Store(true)
	d.wg.Wait()
	return nil
}

package realtime

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishDeliversInOrder(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var order []string
	d.Subscribe(TypeTyping, "first", func(_ context.Context, _ *Event) error {
		order = append(order, "first")
		return nil
	})
	d.Subscribe(TypeTyping, "second", func(_ context.Context, _ *Event) error {
		order = append(order, "second")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(TypeTyping, "ch", "alice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestHandlerErrorDoesNotStopFanout(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var delivered atomic.Int32
	d.Subscribe(TypeMessagePosted, "failing", func(_ context.Context, _ *Event) error {
		return fmt.Errorf("boom")
	})
	d.Subscribe(TypeMessagePosted, "ok", func(_ context.Context, _ *Event) error {
		delivered.Add(1)
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(TypeMessagePosted, "ch", "bob"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), delivered.Load())
}

func TestPublishRejectsInvalidType(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	evt := NewEvent(TypeTyping, "ch", "alice")
	evt.Type = "bogus"

	require.Error(t, d.Publish(context.Background(), evt))
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	d.Subscribe(TypeTyping, "h", func(_ context.Context, _ *Event) error { return nil })
	require.Equal(t, 1, d.HandlerCount(TypeTyping))

	d.Unsubscribe(TypeTyping, "h")
	assert.Zero(t, d.HandlerCount(TypeTyping))
}

func TestPublishAsyncWaitsOnClose(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var delivered atomic.Int32
	d.Subscribe(TypeTyping, "counter", func(_ context.Context, _ *Event) error {
		delivered.Add(1)
		return nil
	})

	for i := 0; i < 10; i++ {
		d.PublishAsync(context.Background(), NewEvent(TypeTyping, "ch", "alice"))
	}
	require.NoError(t, d.Close())
	assert.Equal(t, int32(10), delivered.Load())

	// Closed dispatcher rejects further publishes.
	require.Error(t, d.Publish(context.Background(), NewEvent(TypeTyping, "ch", "alice")))
}

func TestWithPayloadCopies(t *testing.T) {
	evt := NewEvent(TypeTyping, "ch", "alice")
	withExtra := evt.WithPayload("k", "v")

	assert.Empty(t, evt.Payload)
	assert.Equal(t, "v", withExtra.Payload["k"])
	assert.Equal(t, evt.ID, withExtra.ID)
}

package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/rtk/service/messaging"
)

type tickPayload struct {
	Tick uint64
}

func TestNewRejectsUnknownVendor(t *testing.T) {
	_, err := New(messaging.Vendor("bolt"))
	assert.Error(t, err)

	_, err = New(messaging.VendorFS)
	assert.Error(t, err, "fs vendor requires a queue config factory")
}

func TestTypedPublishConsume(t *testing.T) {
	svc, err := New(messaging.VendorMemory)
	require.NoError(t, err)

	publisher, err := PublisherOf[tickPayload](svc)
	require.NoError(t, err)

	ctx := context.Background()
	evt := NewEvent(&Context{KernelID: "k1", TaskID: 7, Tick: 42, EventType: "contextSwitch"}, tickPayload{Tick: 42})
	require.NoError(t, publisher.Publish(ctx, evt))

	got, err := publisher.Consume(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 42, got.Data.Tick)
	assert.Equal(t, "k1", got.Context.KernelID)
	assert.EqualValues(t, 7, got.Context.TaskID)
}

func TestTypedListener(t *testing.T) {
	svc, err := New(messaging.VendorMemory)
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []uint64
	require.NoError(t, SetListenerOf[tickPayload](svc, func(e *Event[tickPayload]) {
		mu.Lock()
		seen = append(seen, e.Data.Tick)
		mu.Unlock()
	}))

	publisher, err := PublisherOf[tickPayload](svc)
	require.NoError(t, err)
	ctx := context.Background()
	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{Tick: i}, tickPayload{Tick: i})))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, time.Millisecond)
}

// TestFirehoseMirrors verifies typed events are mirrored onto the untyped
// listener.
func TestFirehoseMirrors(t *testing.T) {
	svc, err := New(messaging.VendorMemory)
	require.NoError(t, err)

	var mu sync.Mutex
	count := 0
	svc.SetListener(func(e *Event[any]) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	publisher, err := PublisherOf[tickPayload](svc)
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{Tick: 1}, tickPayload{Tick: 1})))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	}, time.Second, time.Millisecond)
}

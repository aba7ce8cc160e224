package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesEveryStreamOfUser(t *testing.T) {
	hub := NewHub[string](2)

	a, closeA := hub.Subscribe("u1")
	defer closeA()
	b, closeB := hub.Subscribe("u1")
	defer closeB()
	other, closeOther := hub.Subscribe("u2")
	defer closeOther()

	assert.Equal(t, 2, hub.Publish("u1", "hello"))
	assert.Equal(t, "hello", <-a)
	assert.Equal(t, "hello", <-b)
	assert.Empty(t, other)
	assert.Equal(t, 3, hub.TotalSubscribers())
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub[int](1)
	ch, cleanup := hub.Subscribe("u1")
	defer cleanup()

	assert.Equal(t, 1, hub.Publish("u1", 1))
	assert.Equal(t, 0, hub.Publish("u1", 2))
	assert.Equal(t, 1, <-ch)
}

func TestHub_CleanupClosesAndForgets(t *testing.T) {
	hub := NewHub[int](1)
	ch, cleanup := hub.Subscribe("u1")
	require.Equal(t, 1, hub.SubscriberCount("u1"))

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("u1"))
	assert.Equal(t, 0, hub.Publish("u1", 1))
}

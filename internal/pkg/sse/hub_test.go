package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	h := NewHub()

	a, cleanupA := h.Subscribe(TopicAdmins)
	defer cleanupA()
	b, cleanupB := h.Subscribe(TopicAdmins)
	defer cleanupB()
	other, cleanupOther := h.Subscribe("other")
	defer cleanupOther()

	h.Publish(TopicAdmins, Event{Event: "record.created", Data: "x"})

	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			assert.Equal(t, "record.created", ev.Event)
			assert.Equal(t, TopicAdmins, ev.Topic)
		default:
			t.Fatal("expected event")
		}
	}

	select {
	case <-other:
		t.Fatal("unexpected event on other topic")
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	h := NewHub()

	ch, cleanup := h.Subscribe(TopicAdmins)
	require.Equal(t, 1, h.SubscriberCount(TopicAdmins))

	cleanup()
	cleanup()
	assert.Equal(t, 0, h.SubscriberCount(TopicAdmins))

	_, open := <-ch
	assert.False(t, open)

	// publishing with no subscribers is a no-op
	h.Publish(TopicAdmins, Event{Event: "record.created"})
}

func TestHub_FullBufferDropsEvents(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe(TopicAdmins)
	defer cleanup()

	for i := 0; i < h.buffer+5; i++ {
		h.Publish(TopicAdmins, Event{Event: "tick", Data: i})
	}

	assert.Len(t, ch, h.buffer)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierPublish(t *testing.T) {
	n := NewNotifier()

	var got []Event
	n.Subscribe(func(e Event) {
		got = append(got, e)
	})

	n.Publish(Event{Section: "display", Key: "use_24hr", Value: true})

	require.Len(t, got, 1)
	assert.Equal(t, "display", got[0].Section)
	assert.Equal(t, "use_24hr", got[0].Key)
	assert.Equal(t, true, got[0].Value)
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier()

	count := 0
	unsubscribe := n.Subscribe(func(Event) { count++ })

	n.Publish(Event{})
	unsubscribe()
	n.Publish(Event{})

	assert.Equal(t, 1, count)
}

func TestStoreSetPublishes(t *testing.T) {
	s := newTestStore(t)

	var got Event
	s.Subscribe(func(e Event) { got = e })

	s.Set("calculation", "house_system", "Koch")

	assert.Equal(t, "calculation", got.Section)
	assert.Equal(t, "house_system", got.Key)
	assert.Equal(t, "Koch", got.Value)
}

func TestStoreResetPublishesFullChange(t *testing.T) {
	s := newTestStore(t)

	events := 0
	s.Subscribe(func(e Event) {
		if e.Section == "" {
			events++
		}
	})

	s.ResetToDefaults()

	assert.Equal(t, 1, events)
}

package libevt

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCounterWatch(t *testing.T) {
	counter, err := NewEventCounter(prometheus.NewRegistry(), "libevt")
	require.NoError(t, err)

	source := NewEmitter()
	counter.Watch(source, "source", "foo-event", "bar-event")

	source.Dispatch("foo-event")
	source.Dispatch("foo-event")
	source.Dispatch("bar-event")
	source.Dispatch("baz-event")

	assert.Equal(t, 2.0, testutil.ToFloat64(counter.events.WithLabelValues("source", "foo-event")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.events.WithLabelValues("source", "bar-event")))
	assert.Equal(t, 2, testutil.CollectAndCount(counter.events))
}

func TestEventCounterUnwatch(t *testing.T) {
	counter, err := NewEventCounter(prometheus.NewRegistry(), "libevt")
	require.NoError(t, err)

	first := NewEmitter()
	second := NewEmitter()
	counter.Watch(first, "first", "foo-event")
	counter.Watch(second, "second", "foo-event")

	counter.Unwatch(first)
	first.Dispatch("foo-event")
	second.Dispatch("foo-event")

	assert.Zero(t, first.Len("foo-event"))
	assert.Equal(t, 0.0, testutil.ToFloat64(counter.events.WithLabelValues("first", "foo-event")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.events.WithLabelValues("second", "foo-event")))

	counter.Close()
	second.Dispatch("foo-event")

	assert.Zero(t, second.Len("foo-event"))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.events.WithLabelValues("second", "foo-event")))
}

func TestEventCounterSkipsCanceledDispatch(t *testing.T) {
	counter, err := NewEventCounter(prometheus.NewRegistry(), "libevt")
	require.NoError(t, err)

	source := NewEmitter()
	source.On("foo-event", NewGuard(func(*Event) bool { return false }))
	counter.Watch(source, "source", "foo-event")

	source.DispatchEvent(Event{Name: "foo-event", Cancelable: true})
	source.DispatchEvent(Event{Name: "foo-event"})

	assert.Equal(t, 1.0, testutil.ToFloat64(counter.events.WithLabelValues("source", "foo-event")))
}

func TestEventCounterDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewEventCounter(reg, "libevt")
	require.NoError(t, err)

	_, err = NewEventCounter(reg, "libevt")
	assert.Error(t, err)
}

func TestEventCounterWatchTwiceCountsOnce(t *testing.T) {
	counter, err := NewEventCounter(prometheus.NewRegistry(), "libevt")
	require.NoError(t, err)

	source := NewEmitter()
	counter.Watch(source, "source", "foo-event")
	counter.Watch(source, "source", "foo-event", "foo-event")
	counter.Watch(source, "other", "foo-event")

	source.Dispatch("foo-event")

	assert.Equal(t, 2, source.Len("foo-event"))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.events.WithLabelValues("source", "foo-event")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.events.WithLabelValues("other", "foo-event")))

	counter.Unwatch(source)
	counter.Watch(source, "source", "foo-event")
	source.Dispatch("foo-event")

	assert.Equal(t, 2.0, testutil.ToFloat64(counter.events.WithLabelValues("source", "foo-event")))
}

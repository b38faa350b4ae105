package libevt

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// EventCounter counts the events dispatched by the targets it watches.
type EventCounter struct {
	events    *prometheus.CounterVec
	listeners *ListenerManager

	mu       sync.Mutex
	counters map[counterKey]*Listener
}

type counterKey struct {
	target Target
	source string
	event  string
}

// NewEventCounter creates an EventCounter and registers its collector on reg.
func NewEventCounter(reg prometheus.Registerer, namespace string, opts ...Option) (*EventCounter, error) {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "dispatched_total",
			Help:      "Total number of events delivered to the counter, by source and event name",
		},
		[]string{"source", "event"},
	)
	if err := reg.Register(events); err != nil {
		return nil, errors.Wrap(err, "cannot register event counter")
	}

	return &EventCounter{
		events:    events,
		listeners: NewListenerManager(opts...),
		counters:  make(map[counterKey]*Listener),
	}, nil
}

// Watch counts every dispatch of the given events on target under the
// source label. The counting listener is added last, so it does not see
// dispatches canceled by earlier listeners. Watching the same event of
// target under the same source again counts it once.
func (c *EventCounter) Watch(target Target, source string, events ...string) {
	for _, event := range events {
		c.listeners.Attach(target, event, c.counter(target, source, event))
	}
}

func (c *EventCounter) counter(target Target, source, event string) *Listener {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := counterKey{target: target, source: source, event: event}
	if l, ok := c.counters[key]; ok {
		return l
	}
	inc := c.events.WithLabelValues(source, event)
	l := NewListener(func(*Event) { inc.Inc() })
	c.counters[key] = l
	return l
}

// Unwatch stops counting the events of target.
func (c *EventCounter) Unwatch(target Target) {
	c.listeners.DetachTarget(target)

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.counters {
		if key.target == target {
			delete(c.counters, key)
		}
	}
}

// Close stops counting on every watched target.
func (c *EventCounter) Close() {
	c.listeners.DetachAll()

	c.mu.Lock()
	clear(c.counters)
	c.mu.Unlock()
}

package libevt

import (
	"maps"
	"slices"
	"sync"
)

// ListenerManager remembers the listeners it attached to other targets so
// they can be detached later without the caller keeping the references.
//
// The target owns the subscription. The manager only owns its bookkeeping:
// per target, per event name, the listeners it attached.
type ListenerManager struct {
	attached map[Target]map[string]*listenerSet
	lock     sync.Mutex
	logger   Logger
}

// NewListenerManager creates an empty ListenerManager.
func NewListenerManager(opts ...Option) *ListenerManager {
	o := newOptions(opts)
	return &ListenerManager{
		attached: make(map[Target]map[string]*listenerSet),
		logger:   o.logger.WithField("type", "listener_manager"),
	}
}

// Attach registers listener on target for event and records it.
func (m *ListenerManager) Attach(target Target, event string, listener *Listener) {
	if listener == nil {
		return
	}

	target.Add(event, listener)

	m.lock.Lock()
	defer m.lock.Unlock()

	byEvent, ok := m.attached[target]
	if !ok {
		byEvent = make(map[string]*listenerSet)
		m.attached[target] = byEvent
	}
	set, ok := byEvent[event]
	if !ok {
		set = newListenerSet()
		byEvent[event] = set
	}
	if set.add(listener) {
		m.logger.Debugf("attached listener to %q on %T", event, target)
	}
}

// Detach removes from target every listener this manager attached for event.
func (m *ListenerManager) Detach(target Target, event string) {
	m.detach(target, event)
}

// DetachTarget removes from target every listener this manager attached,
// whatever the event.
func (m *ListenerManager) DetachTarget(target Target) {
	m.lock.Lock()
	var events []string
	if byEvent, ok := m.attached[target]; ok {
		events = slices.Sorted(maps.Keys(byEvent))
	}
	m.lock.Unlock()

	for _, event := range events {
		m.detach(target, event)
	}
}

// DetachAll removes every listener this manager attached to any target.
func (m *ListenerManager) DetachAll() {
	m.lock.Lock()
	targets := slices.Collect(maps.Keys(m.attached))
	m.lock.Unlock()

	for _, target := range targets {
		m.DetachTarget(target)
	}
}

// Attached returns how many listeners the manager holds for target and event.
func (m *ListenerManager) Attached(target Target, event string) int {
	m.lock.Lock()
	defer m.lock.Unlock()

	if set, ok := m.attached[target][event]; ok {
		return set.len()
	}
	return 0
}

// Targets returns how many targets have at least one recorded listener.
func (m *ListenerManager) Targets() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return len(m.attached)
}

// detach unregisters outside the lock, then forgets exactly the listeners it
// unregistered. If target.Remove panics the bookkeeping is left untouched.
func (m *ListenerManager) detach(target Target, event string) {
	m.lock.Lock()
	set, ok := m.attached[target][event]
	var listeners []*Listener
	if ok {
		listeners = set.list()
	}
	m.lock.Unlock()

	if len(listeners) == 0 {
		return
	}

	for _, listener := range listeners {
		target.Remove(event, listener)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	byEvent, ok := m.attached[target]
	if !ok {
		return
	}
	if set, ok = byEvent[event]; ok {
		for _, listener := range listeners {
			set.remove(listener)
		}
		if set.len() == 0 {
			delete(byEvent, event)
		}
	}
	if len(byEvent) == 0 {
		delete(m.attached, target)
	}

	m.logger.Debugf("detached %d listener(s) from %q on %T", len(listeners), event, target)
}

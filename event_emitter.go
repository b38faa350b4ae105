package libevt

import (
	"sync"
)

// Emitter is a listener registry. It maps event names to ordered sets of
// listeners and runs the dispatch loop.
//
// Dispatch is synchronous: listeners run on the caller's goroutine, in the
// order they were added. No lock is held while a listener runs, so listeners
// may add, remove or dispatch on the same Emitter.
type Emitter struct {
	listeners map[string]*listenerSet
	lock      sync.RWMutex
	target    any
	logger    Logger
}

// NewEmitter creates a new Emitter and returns a pointer to it.
func NewEmitter(opts ...Option) *Emitter {
	o := newOptions(opts)
	return newEmitter(o)
}

func newEmitter(o options) *Emitter {
	e := &Emitter{
		listeners: make(map[string]*listenerSet),
		target:    o.target,
		logger:    o.logger.WithField("type", "emitter"),
	}
	if e.target == nil {
		e.target = e
	}
	return e
}

// Add registers a listener for the given event. Adding the same listener
// twice has no effect.
func (e *Emitter) Add(event string, listener *Listener) {
	if listener == nil {
		return
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	set, ok := e.listeners[event]
	if !ok {
		set = newListenerSet()
		e.listeners[event] = set
	}
	set.add(listener)
}

// On is an alias for Add.
func (e *Emitter) On(event string, listener *Listener) {
	e.Add(event, listener)
}

// Remove unregisters a listener from the given event. Unknown events and
// listeners are ignored.
func (e *Emitter) Remove(event string, listener *Listener) {
	e.lock.Lock()
	defer e.lock.Unlock()

	set, ok := e.listeners[event]
	if !ok {
		return
	}
	set.remove(listener)
	if set.len() == 0 {
		delete(e.listeners, event)
	}
}

// Off is an alias for Remove.
func (e *Emitter) Off(event string, listener *Listener) {
	e.Remove(event, listener)
}

// Dispatch dispatches a bare event with the given name.
func (e *Emitter) Dispatch(event string) {
	e.DispatchEvent(Event{Name: event})
}

// DispatchEvent runs the dispatch loop for ev. The record is received by
// value; listeners see a private copy whose target is this Emitter's target.
//
// The loop walks the live listener set: a listener removed by an earlier
// listener is skipped and one added during the loop runs in the same
// dispatch.
//
// When ev is cancelable, the loop stops before the next listener once a
// listener returned false or the event is canceled. An event dispatched
// already canceled reaches no listener at all. Name and Cancelable are read
// once, when the dispatch starts.
//
// Panics raised by listeners are not recovered.
func (e *Emitter) DispatchEvent(ev Event) {
	name, cancelable := ev.Name, ev.Cancelable
	listener, pos, ok := e.next(name, 0)
	if !ok {
		return
	}

	proceed := true
	for i := 1; ok; i++ {
		if cancelable && (!proceed || ev.Canceled) {
			e.logger.Debugf("dispatch of %q stopped before listener %d", name, i)
			return
		}
		ev.target = e.target
		proceed = listener.call(&ev)
		listener, pos, ok = e.next(name, pos)
	}
}

// Has reports whether listener is registered for event.
func (e *Emitter) Has(event string, listener *Listener) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()

	set, ok := e.listeners[event]
	return ok && set.has(listener)
}

// Len returns the number of listeners registered for event.
func (e *Emitter) Len(event string) int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	if set, ok := e.listeners[event]; ok {
		return set.len()
	}
	return 0
}

// next returns the listener of event registered after position pos.
func (e *Emitter) next(event string, pos uint64) (*Listener, uint64, bool) {
	e.lock.RLock()
	defer e.lock.RUnlock()

	set, ok := e.listeners[event]
	if !ok {
		return nil, 0, false
	}
	return set.next(pos)
}

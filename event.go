package libevt

import "fmt"

// Event is the record handed to listeners during a dispatch loop.
//
// Callers build an Event and pass it by value to DispatchEvent, so the
// original is never touched by the dispatch. Listeners receive a pointer to
// the dispatcher's private copy and may flip Canceled; the target is set by
// the dispatching Emitter and is only readable through Target.
type Event struct {
	// Name is the routing key.
	Name string
	// Cancelable enables early termination of the dispatch loop.
	Cancelable bool
	// Canceled stops the remaining listeners when Cancelable is true.
	Canceled bool
	// Data is an arbitrary payload. It is copied shallowly with the record.
	Data any

	target any
}

// Target returns the object reported as the originator of the event.
func (e *Event) Target() any {
	return e.target
}

// Cancel marks the event as canceled. It only has an effect on the dispatch
// loop when the event is cancelable.
func (e *Event) Cancel() {
	e.Canceled = true
}

func (e *Event) String() string {
	return fmt.Sprintf("Event{name=%s,cancelable=%t,canceled=%t}",
		e.Name, e.Cancelable, e.Canceled)
}

package libevt

// Target is anything listeners can be registered on by event name.
// Emitter, EventManager and Socket implement it; host types can too.
//
// Targets are used as map keys by ListenerManager, so implementations must be
// comparable. Pointer receivers are the usual choice.
type Target interface {
	// Add registers the listener for the given event.
	Add(event string, listener *Listener)

	// Remove unregisters the listener from the given event.
	Remove(event string, listener *Listener)
}

var (
	_ Target = (*Emitter)(nil)
	_ Target = (*EventManager)(nil)
	_ Target = (*Socket)(nil)
)

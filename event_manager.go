package libevt

// EventManager bundles an Emitter, the object's own event source, with a
// ListenerManager for the subscriptions it makes on other targets.
//
// Events it dispatches report the EventManager as their target unless
// WithTarget says otherwise.
type EventManager struct {
	emitter   *Emitter
	listeners *ListenerManager
	forwarder *Listener
}

// NewEventManager creates an EventManager.
func NewEventManager(opts ...Option) *EventManager {
	m := &EventManager{}
	o := newOptions(opts)
	if o.target == nil {
		o.target = m
	}
	m.emitter = newEmitter(o)
	m.listeners = NewListenerManager(WithLogger(o.logger))
	m.forwarder = NewListener(func(e *Event) {
		m.emitter.DispatchEvent(*e)
	})
	return m
}

func (m *EventManager) Add(event string, listener *Listener)    { m.emitter.Add(event, listener) }
func (m *EventManager) On(event string, listener *Listener)     { m.emitter.On(event, listener) }
func (m *EventManager) Remove(event string, listener *Listener) { m.emitter.Remove(event, listener) }
func (m *EventManager) Off(event string, listener *Listener)    { m.emitter.Off(event, listener) }
func (m *EventManager) Dispatch(event string)                   { m.emitter.Dispatch(event) }
func (m *EventManager) DispatchEvent(ev Event)                  { m.emitter.DispatchEvent(ev) }

func (m *EventManager) Attach(target Target, event string, listener *Listener) {
	m.listeners.Attach(target, event, listener)
}

func (m *EventManager) Detach(target Target, event string) { m.listeners.Detach(target, event) }
func (m *EventManager) DetachTarget(target Target)         { m.listeners.DetachTarget(target) }
func (m *EventManager) DetachAll()                         { m.listeners.DetachAll() }

// Forward re-emits the given events of source as if they were this
// manager's own. Each inbound record is copied and dispatched under the same
// name, with this manager as the target. Forwarding can be undone with
// Detach or DetachTarget on source.
//
// Every forwarding shares one listener, so forwarding the same event of the
// same source twice re-emits it once.
func (m *EventManager) Forward(source Target, events ...string) {
	for _, event := range events {
		m.listeners.Attach(source, event, m.forwarder)
	}
}

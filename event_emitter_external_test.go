package libevt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonirico/libevt"
)

func TestDispatchTargetSurvivesRecordOverwrite(t *testing.T) {
	emitter := libevt.NewEmitter()
	var targets []any

	emitter.Add("foo-event", libevt.NewListener(func(e *libevt.Event) {
		targets = append(targets, e.Target())
		*e = libevt.Event{Name: e.Name}
	}))
	emitter.Add("foo-event", libevt.NewListener(func(e *libevt.Event) {
		targets = append(targets, e.Target())
	}))

	emitter.Dispatch("foo-event")

	assert.Equal(t, []any{emitter, emitter}, targets)
}

func TestDispatchTargetFromOption(t *testing.T) {
	owner := struct{ name string }{name: "owner"}
	manager := libevt.NewEventManager(libevt.WithTarget(owner))
	var got []any

	manager.On("foo-event", libevt.NewListener(func(e *libevt.Event) {
		got = append(got, e.Target())
		*e = libevt.Event{}
	}))
	manager.On("foo-event", libevt.NewListener(func(e *libevt.Event) {
		got = append(got, e.Target())
	}))

	manager.DispatchEvent(libevt.Event{Name: "foo-event"})

	assert.Equal(t, []any{owner, owner}, got)
}

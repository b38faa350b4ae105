package libevt

import (
	"slices"
	"sort"
	"sync/atomic"
)

type callback func(*Event) bool

// Listener is a handle around a callback. Listener identity is the identity
// of the handle: adding the same *Listener twice registers it once, while two
// handles built from the same function are two listeners.
type Listener struct {
	fn callback
}

// NewListener wraps fn into a Listener that never cancels the dispatch loop
// by its return value. It can still cancel through Event.Cancel.
func NewListener(fn func(e *Event)) *Listener {
	return &Listener{fn: func(e *Event) bool {
		fn(e)
		return true
	}}
}

// NewGuard wraps fn into a Listener whose return value takes part in
// cancellation: returning false stops the loop of a cancelable event.
func NewGuard(fn func(e *Event) bool) *Listener {
	return &Listener{fn: fn}
}

func (l *Listener) call(e *Event) bool {
	return l.fn(e)
}

// seq stamps every insertion. It is shared by all sets so a set that is
// pruned and created again never reuses a position.
var seq atomic.Uint64

// listenerSet keeps listeners unique and in insertion order.
type listenerSet struct {
	order []*Listener
	index map[*Listener]uint64
}

func newListenerSet() *listenerSet {
	return &listenerSet{index: make(map[*Listener]uint64)}
}

func (s *listenerSet) add(l *Listener) bool {
	if _, ok := s.index[l]; ok {
		return false
	}
	s.index[l] = seq.Add(1)
	s.order = append(s.order, l)
	return true
}

func (s *listenerSet) remove(l *Listener) bool {
	if _, ok := s.index[l]; !ok {
		return false
	}
	delete(s.index, l)
	s.order = slices.DeleteFunc(slices.Clone(s.order), func(x *Listener) bool {
		return x == l
	})
	return true
}

func (s *listenerSet) has(l *Listener) bool {
	_, ok := s.index[l]
	return ok
}

func (s *listenerSet) len() int {
	return len(s.order)
}

// next returns the first listener inserted after position pos, with its own
// position. A listener removed and added again gets a new position.
func (s *listenerSet) next(pos uint64) (*Listener, uint64, bool) {
	i := sort.Search(len(s.order), func(i int) bool {
		return s.index[s.order[i]] > pos
	})
	if i == len(s.order) {
		return nil, 0, false
	}
	l := s.order[i]
	return l, s.index[l], true
}

// list returns a snapshot that later adds and removes do not affect.
func (s *listenerSet) list() []*Listener {
	return slices.Clone(s.order)
}

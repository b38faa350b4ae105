package libevt

import (
	"bytes"
	"sync"

	"github.com/stretchr/testify/mock"
)

// mockTarget records registrations without dispatching anything.
type mockTarget struct {
	mock.Mock
}

func (m *mockTarget) Add(event string, listener *Listener) {
	m.Called(event, listener)
}

func (m *mockTarget) Remove(event string, listener *Listener) {
	m.Called(event, listener)
}

// panickingTarget accepts registrations and panics on removal.
type panickingTarget struct {
	*Emitter
}

func (p *panickingTarget) Remove(string, *Listener) {
	panic("cannot unregister")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

package libevt

import (
	"time"
)

type KeepAliveMessageFactory func() Message

// keepAlive sends a keep-alive message every keepAliveInterval until done is
// closed. It does nothing when no interval is configured.
func (s *Socket) keepAlive(done <-chan struct{}) {
	if s.keepAliveInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-s.closeC:
			return
		case <-ticker.C:
			if err := s.Send(s.keepAliveMessage()); err != nil {
				s.logger.Warnf("cannot send keep-alive: %s", err)
			}
		}
	}
}

// NewKeepAliveMessageFactory returns a factory function for creating keep-alive messages.
// A nil contentFactory yields messages with no payload.
func NewKeepAliveMessageFactory(
	mt MessageType,
	contentFactory func() []byte,
) KeepAliveMessageFactory {
	return func() Message {
		if contentFactory == nil {
			return NewMessage(mt, nil)
		}
		return NewMessage(mt, contentFactory())
	}
}

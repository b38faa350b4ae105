package libevt

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/pkg/errors"
)

// Events dispatched by a Socket.
const (
	EventOpen      = "open"
	EventReconnect = "reconnect"
	EventMessage   = "message"
	EventPing      = "ping"
	EventPong      = "pong"
	EventClose     = "close"
)

const writeWait = time.Second

type (
	// SocketOption configures a Socket.
	SocketOption func(*Socket)

	// Socket is a websocket client connection exposed as an event source.
	// It embeds an Emitter, so listeners are added to it directly or through
	// a ListenerManager, and it can be forwarded by an EventManager.
	//
	// Listeners run on the socket's read goroutine. A slow listener delays
	// the reading of the next frame.
	Socket struct {
		*Emitter

		params                DialParamsGetter
		dialer                *websocket.Dialer
		logger                Logger
		keepAliveInterval     time.Duration
		keepAliveMessage      KeepAliveMessageFactory
		backoff               BackoffCalculator
		connDurationThreshold time.Duration
		namePath              string

		running   atomic.Bool
		connMu    sync.Mutex
		conn      *websocket.Conn
		writeMu   sync.Mutex
		closeC    chan struct{}
		closeOnce sync.Once
	}
)

// WithDialer replaces websocket.DefaultDialer.
func WithDialer(d *websocket.Dialer) SocketOption {
	return func(s *Socket) {
		s.dialer = d
	}
}

// WithSocketLogger sets the logger of the socket and of its emitter.
func WithSocketLogger(l Logger) SocketOption {
	return func(s *Socket) {
		s.logger = l
	}
}

// WithKeepAlive sends the message built by factory every interval while
// connected. A nil factory sends empty pings.
func WithKeepAlive(interval time.Duration, factory KeepAliveMessageFactory) SocketOption {
	return func(s *Socket) {
		s.keepAliveInterval = interval
		s.keepAliveMessage = factory
	}
}

// WithReconnect makes Run dial again after a connection ends. The attempt
// counter fed to calculator is reset when the previous connection lived
// longer than threshold.
func WithReconnect(calculator BackoffCalculator, threshold time.Duration) SocketOption {
	return func(s *Socket) {
		s.backoff = calculator
		s.connDurationThreshold = threshold
	}
}

// WithEventNamePath routes JSON text frames to an additional event named by
// the string found at path (gjson syntax), e.g. "type" or "meta.event".
func WithEventNamePath(path string) SocketOption {
	return func(s *Socket) {
		s.namePath = path
	}
}

// NewSocket creates a Socket. Nothing is dialed until Run is called.
func NewSocket(params DialParamsGetter, opts ...SocketOption) *Socket {
	s := &Socket{
		params: params,
		dialer: websocket.DefaultDialer,
		logger: NopLogger(),
		closeC: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.keepAliveMessage == nil {
		s.keepAliveMessage = NewKeepAliveMessageFactory(PingMessage, nil)
	}
	s.logger = s.logger.WithField("type", "socket")
	s.Emitter = newEmitter(options{target: s, logger: s.logger})
	return s
}

// Send writes a message on the current connection. Control frames (ping,
// pong and close) are written with WriteControl.
func (s *Socket) Send(m Message) error {
	conn := s.current()
	if conn == nil {
		return ErrNotConnected
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)

	var err error
	switch mt := m.Type(); {
	case mt.IsControl():
		s.logger.Debugf("=> [%s]", mt)
		err = conn.WriteControl(int(mt), m.Data(), deadline)
	case mt == DataMessage, mt == BinaryMessage:
		s.logger.Debugf("=> [%s] %s", mt, m.Data())
		_ = conn.SetWriteDeadline(deadline)
		err = conn.WriteMessage(int(mt), m.Data())
	default:
		return errors.Errorf("cannot send %s message", mt)
	}

	if err != nil {
		return errors.Wrap(ErrConnectionClosed, err.Error())
	}
	return nil
}

// Close ends the current connection and makes Run return. A closed Socket
// cannot be run again.
func (s *Socket) Close() {
	s.closeOnce.Do(func() {
		_ = s.Send(NewCloseMessage(websocket.CloseNormalClosure, ""))
		close(s.closeC)
	})
}

// Connected reports whether a connection is currently open.
func (s *Socket) Connected() bool {
	return s.current() != nil
}

func (s *Socket) current() *websocket.Conn {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.conn
}

func (s *Socket) setCurrent(conn *websocket.Conn) {
	s.connMu.Lock()
	s.conn = conn
	s.connMu.Unlock()
}

package libevt

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// dial resolves the dial params and opens a new connection.
func (s *Socket) dial(ctx context.Context) (*websocket.Conn, error) {
	p, err := s.params(ctx)
	if err != nil {
		s.logger.Errorf("cannot get dial params due to %s", err)
		return nil, errors.Wrap(err, "cannot get dial params")
	}

	conn, resp, err := s.dialer.DialContext(ctx, p.URL.String(), p.Header)
	if err = s.handleDialError(p.URL, resp, err); err != nil {
		s.logger.Errorf("connection err to %s: %s", p.URL.String(), err)
		return nil, err
	}

	s.logger.Debugf("success opening connection to %s", p.URL.String())
	return conn, nil
}

// serve owns conn until it ends. It dispatches name once the connection is
// usable, every inbound frame while it lives, and close with the reason.
func (s *Socket) serve(ctx context.Context, conn *websocket.Conn, name string) error {
	conn.SetPingHandler(func(appData string) error {
		s.logger.Debugf("<= [PING]")
		s.DispatchEvent(Event{Name: EventPing, Data: NewPingMessage([]byte(appData))})

		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	conn.SetPongHandler(func(appData string) error {
		s.logger.Debugf("<= [PONG]")
		s.DispatchEvent(Event{Name: EventPong, Data: NewPongMessage([]byte(appData))})
		return nil
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-s.closeC:
		case <-done:
			return
		}
		_ = conn.Close()
	}()

	s.setCurrent(conn)
	go s.keepAlive(done)

	s.DispatchEvent(Event{Name: name})

	reason := s.read(ctx, conn)

	s.setCurrent(nil)
	_ = conn.Close()

	s.DispatchEvent(Event{Name: EventClose, Data: reason})
	return reason
}

func (s *Socket) read(ctx context.Context, conn *websocket.Conn) error {
	for {
		messageType, bts, err := conn.ReadMessage()
		if err != nil {
			if s.closing(ctx) {
				return ErrTerminated
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Infof("connection closed by peer: %s", err)
				return ErrConnectionClosed
			}
			s.logger.Errorf("error occurred on websocket read: %s", err)
			return errors.Wrap(ErrConnectionClosed, "error occurred on websocket read: "+err.Error())
		}

		var m Message
		switch messageType {
		case websocket.BinaryMessage:
			s.logger.Debugf("<= [BIN]")
			m = NewBinaryMessage(bts)
		default:
			s.logger.Debugf("<= [DATA] %s", bts)
			m = NewDataMessage(bts)
		}

		s.DispatchEvent(Event{Name: EventMessage, Data: m})
		s.route(m)
	}
}

// route dispatches a JSON text frame under the name found at namePath.
func (s *Socket) route(m Message) {
	if s.namePath == "" || !m.Type().IsData() || !gjson.ValidBytes(m.Data()) {
		return
	}
	res := gjson.GetBytes(m.Data(), s.namePath)
	if res.Type != gjson.String || res.Str == "" {
		return
	}
	s.DispatchEvent(Event{Name: res.Str, Data: m})
}

func (s *Socket) closing(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-s.closeC:
		return true
	default:
		return false
	}
}

func (s *Socket) handleDialError(u url.URL, resp *http.Response, err error) error {
	if err == nil {
		return nil
	}

	// 1. Check HTTP errors first
	var msg string

	if resp != nil {
		if resp.Body != nil {
			bts, readErr := io.ReadAll(resp.Body)
			if readErr == nil {
				msg = string(bts)
			}
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return errors.Wrap(ErrRateLimit, msg)
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return NewDialError(errors.Wrap(ErrCannotConnect, msg), u, resp.StatusCode)
		}
	}

	// 2. Network errors
	return errors.Wrap(ErrCannotConnect, err.Error())
}

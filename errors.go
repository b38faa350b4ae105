package libevt

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

var (
	ErrConnectionClosed = errors.New("connection has been closed")
	ErrCannotConnect    = errors.New("connection cannot be established")
	ErrTerminated       = errors.New("program exit")
	ErrRateLimit        = errors.New("rate limit exceeded")
	ErrAlreadyRunning   = errors.New("socket is already running")
	ErrNotConnected     = errors.New("socket is not connected")
)

// DialError is returned when the server refused the handshake in a way that
// retrying will not fix. Socket.Run does not reconnect after it.
type DialError struct {
	err        error
	url        url.URL
	StatusCode int
}

func (e *DialError) Error() string {
	return fmt.Sprintf("unrecoverable dial error: %s to %s (status %d)",
		e.err, e.url.String(), e.StatusCode)
}

func (e *DialError) Unwrap() error { return e.err }

// NewDialError wraps err. It returns nil when err is nil.
func NewDialError(err error, u url.URL, status int) *DialError {
	if err == nil {
		return nil
	}
	return &DialError{
		err:        err,
		url:        u,
		StatusCode: status,
	}
}

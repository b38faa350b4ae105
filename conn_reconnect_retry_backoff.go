package libevt

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"
)

// BackoffCalculator returns how long to wait before the given attempt.
type BackoffCalculator func(attempts int) time.Duration

// Run dials and serves connections until the socket is closed, ctx is done,
// or a connection ends and no reconnect policy is configured.
//
// Without WithReconnect, Run returns the dial error or the reason the
// connection ended. With it, Run keeps dialing, except after a DialError.
// Run returns nil when stopped through Close or ctx.
func (s *Socket) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	var (
		attempts  = 0
		connected = 0
	)

	for {
		if s.closing(ctx) {
			return nil
		}

		conn, err := s.dial(ctx)
		if err != nil {
			if s.closing(ctx) {
				return nil
			}
			var dialErr *DialError
			if s.backoff == nil || errors.As(err, &dialErr) {
				return err
			}

			attempts++
			ttw := s.backoff(attempts)
			s.logger.Infof("cannot connect, retrying in %s due to: %s", ttw, err)
			if !s.wait(ctx, ttw) {
				return nil
			}
			continue
		}

		name := EventOpen
		if connected > 0 {
			name = EventReconnect
		}
		connected++

		then := time.Now()
		reason := s.serve(ctx, conn, name)

		if s.closing(ctx) {
			return nil
		}
		if s.backoff == nil {
			return reason
		}

		if time.Since(then) > s.connDurationThreshold {
			// The connection was healthy long enough to count as a fresh start.
			attempts = 0
		} else {
			attempts++
		}

		ttw := s.backoff(attempts)
		s.logger.Infof("retrying to connect after %s due to %s", ttw, reason)
		if !s.wait(ctx, ttw) {
			return nil
		}
	}
}

// wait sleeps for d. It returns false if the socket was closed meanwhile.
func (s *Socket) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return !s.closing(ctx)
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-s.closeC:
		return false
	case <-t.C:
		return true
	}
}

func ExponentialBackoff(attempts int) float64 {
	return (math.Pow(2.0, float64(attempts)) - 1) / 2
}

func ExponentialBackoffSeconds(attempts int) time.Duration {
	return time.Duration(ExponentialBackoff(attempts) * float64(time.Second))
}

// ConstantBackoff waits d before every attempt.
func ConstantBackoff(d time.Duration) BackoffCalculator {
	return func(int) time.Duration {
		return d
	}
}

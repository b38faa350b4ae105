package main

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sonirico/libevt"
	"github.com/sonirico/libevt/internal/config"
)

const (
	shutdownTimeout       = 5 * time.Second
	connDurationThreshold = time.Minute
)

// watch connects to cfg.URL and logs and counts the configured events until
// ctx is done or the connection ends for good.
func watch(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	logger := libevt.NewZerologLogger(log)

	socket, err := newSocket(cfg, logger)
	if err != nil {
		return err
	}

	hub := libevt.NewEventManager(libevt.WithLogger(logger))
	hub.Forward(socket, cfg.Events...)
	defer hub.DetachAll()

	printer := logEvent(log)
	for _, event := range cfg.Events {
		hub.On(event, printer)
	}

	reg := prometheus.NewRegistry()
	counter, err := libevt.NewEventCounter(reg, "evtwatch", libevt.WithLogger(logger))
	if err != nil {
		return err
	}
	counter.Watch(hub, "hub", cfg.Events...)
	defer counter.Close()

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           newRouter(reg, socket),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return socket.Run(ctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "metrics server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		socket.Close()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newSocket(cfg config.Config, logger libevt.Logger) (*libevt.Socket, error) {
	header := make(http.Header, len(cfg.Headers))
	for k, v := range cfg.Headers {
		header.Set(k, v)
	}

	params, err := libevt.StaticDialParams(cfg.URL, header)
	if err != nil {
		return nil, err
	}

	interval, err := cfg.KeepAliveInterval()
	if err != nil {
		return nil, err
	}

	opts := []libevt.SocketOption{
		libevt.WithSocketLogger(logger),
		libevt.WithEventNamePath(cfg.NamePath),
	}
	if interval > 0 {
		opts = append(opts, libevt.WithKeepAlive(interval, nil))
	}
	if cfg.Reconnect {
		opts = append(opts, libevt.WithReconnect(libevt.ExponentialBackoffSeconds, connDurationThreshold))
	}

	return libevt.NewSocket(params, opts...), nil
}

// logEvent prints one line per event it receives.
func logEvent(log zerolog.Logger) *libevt.Listener {
	return libevt.NewListener(func(e *libevt.Event) {
		entry := log.Info().Str("event", e.Name)
		switch data := e.Data.(type) {
		case libevt.Message:
			entry = entry.Str("frame", data.Type().String()).Bytes("data", data.Data())
		case error:
			entry = entry.AnErr("reason", data)
		}
		entry.Msg("event")
	})
}

package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sonirico/libevt/internal/config"
)

type flags struct {
	configPath  string
	url         string
	events      []string
	namePath    string
	keepAlive   string
	reconnect   bool
	metricsAddr string
	logLevel    string
}

// buildRootCmd constructs the evtwatch command. Flags override values read
// from --config.
func buildRootCmd(log zerolog.Logger) *cobra.Command {
	root, _ := newRootCmd(log)
	return root
}

func newRootCmd(log zerolog.Logger) (*cobra.Command, *flags) {
	f := &flags{}

	root := &cobra.Command{
		Use:           "evtwatch",
		Short:         "Watch the events of a websocket stream",
		Example:       "  evtwatch --url wss://example.com/stream --event open --event trade --name-path type",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
			}
			return watch(cmd.Context(), cfg, log.Level(level))
		},
	}

	fs := root.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "Config file (.toml, .yaml, .yml or .json)")
	fs.StringVar(&f.url, "url", "", "Websocket URL (ws:// or wss://)")
	fs.StringSliceVarP(&f.events, "event", "e", nil, "Event to watch, repeatable (default open,message,close,reconnect)")
	fs.StringVar(&f.namePath, "name-path", "", "JSON path of the event name in text frames, e.g. type")
	fs.StringVar(&f.keepAlive, "keep-alive", "", "Ping interval, e.g. 15s (disabled when empty)")
	fs.BoolVar(&f.reconnect, "reconnect", false, "Reconnect with exponential backoff when the connection ends")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Listen address for /metrics and /healthz (default :9464)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error (default info)")

	return root, f
}

// resolveConfig merges the config file with the flags set on cmd.
func resolveConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("url") {
		cfg.URL = f.url
	}
	if changed("event") {
		cfg.Events = f.events
	}
	if changed("name-path") {
		cfg.NamePath = f.namePath
	}
	if changed("keep-alive") {
		cfg.KeepAlive = f.keepAlive
	}
	if changed("reconnect") {
		cfg.Reconnect = f.reconnect
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = f.metricsAddr
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}

	cfg = cfg.Defaults()
	return cfg, cfg.Validate()
}

package libevt

import "github.com/rs/zerolog"

type zerologLogger struct {
	z zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger to Logger.
func NewZerologLogger(z zerolog.Logger) Logger {
	return zerologLogger{z: z}
}

func (l zerologLogger) WithField(key string, value any) Logger {
	return zerologLogger{z: l.z.With().Interface(key, value).Logger()}
}

func (l zerologLogger) Debugf(format string, args ...any) { l.z.Debug().Msgf(format, args...) }
func (l zerologLogger) Infof(format string, args ...any)  { l.z.Info().Msgf(format, args...) }
func (l zerologLogger) Warnf(format string, args ...any)  { l.z.Warn().Msgf(format, args...) }
func (l zerologLogger) Errorf(format string, args ...any) { l.z.Error().Msgf(format, args...) }

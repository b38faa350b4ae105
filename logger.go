package libevt

// Logger is the logging surface used across the package.
type Logger interface {
	WithField(key string, value any) Logger
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

func (l nopLogger) WithField(string, any) Logger { return l }
func (nopLogger) Debugf(string, ...any)          {}
func (nopLogger) Infof(string, ...any)           {}
func (nopLogger) Warnf(string, ...any)           {}
func (nopLogger) Errorf(string, ...any)          {}

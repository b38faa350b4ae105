package libevt

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"
)

// writerLogger writes one plain text line per entry to an io.Writer.
type writerLogger struct {
	mu     *sync.Mutex
	writer io.Writer
	fields map[string]any
	now    func() time.Time
}

// NewWriterLogger creates a Logger that writes to w. Fields are printed in
// key order so the output is stable.
func NewWriterLogger(w io.Writer) Logger {
	return &writerLogger{
		mu:     &sync.Mutex{},
		writer: w,
		fields: make(map[string]any),
		now:    time.Now,
	}
}

func (l *writerLogger) WithField(key string, value any) Logger {
	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &writerLogger{mu: l.mu, writer: l.writer, fields: fields, now: l.now}
}

func (l *writerLogger) formatFields() string {
	if len(l.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(" [")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
	}
	b.WriteString("]")
	return b.String()
}

func (l *writerLogger) log(level, format string, args ...any) {
	timestamp := l.now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.writer, "[%s] %s%s: %s\n", timestamp, level, l.formatFields(), msg)
}

func (l *writerLogger) Debugf(format string, args ...any) { l.log("DEBUG", format, args...) }
func (l *writerLogger) Infof(format string, args ...any)  { l.log("INFO", format, args...) }
func (l *writerLogger) Warnf(format string, args ...any)  { l.log("WARN", format, args...) }
func (l *writerLogger) Errorf(format string, args ...any) { l.log("ERROR", format, args...) }

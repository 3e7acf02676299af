package logger

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BasicLogger prints log lines using fmt.Printf. Intended for examples and
// quick local debugging, not production use.
type BasicLogger struct {
	mu     *sync.Mutex
	fields []Field
}

var _ Logger = (*BasicLogger)(nil)

// New returns a basic logger that writes to stdout.
func New() *BasicLogger {
	return &BasicLogger{mu: &sync.Mutex{}}
}

// With returns a logger that includes the given fields on each log line.
func (l *BasicLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	next := &BasicLogger{mu: l.mu}
	next.fields = append(append(next.fields, l.fields...), fields...)
	return next
}

func (l *BasicLogger) Debug(msg string, fields ...Field) { l.log("DEBUG", msg, fields) }
func (l *BasicLogger) Info(msg string, fields ...Field)  { l.log("INFO", msg, fields) }
func (l *BasicLogger) Warn(msg string, fields ...Field)  { l.log("WARN", msg, fields) }
func (l *BasicLogger) Error(msg string, fields ...Field) { l.log("ERROR", msg, fields) }

func (l *BasicLogger) log(level, msg string, fields []Field) {
	all := make(map[string]any, len(l.fields)+len(fields))
	for _, f := range l.fields {
		all[f.Key] = f.Value
	}
	for _, f := range fields {
		all[f.Key] = f.Value
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s", level, msg)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, all[k])
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Println(sb.String())
}

package logger

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Entry is an error-level record handed to sinks.
type Entry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Caller  string                 `json:"caller"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

// Sink receives every Error and Fatal entry regardless of the configured level.
type Sink interface {
	Capture(e Entry)
}

// AddSink registers s. Sinks are called synchronously and must not block.
func (l *Logger) AddSink(s Sink) {
	if s == nil {
		return
	}
	l.mu.Lock()
	l.sinks = append(l.sinks, s)
	l.mu.Unlock()
}

func (l *Logger) dispatch(level, msg string, fields []Field) {
	l.mu.RLock()
	sinks := l.sinks
	l.mu.RUnlock()
	if len(sinks) == 0 {
		return
	}

	entry := Entry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Caller:  caller(3),
	}
	if len(fields) > 0 {
		entry.Fields = make(map[string]interface{}, len(fields))
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}
	for _, s := range sinks {
		s.Capture(entry)
	}
}

// caller trims the path to the module-relative file.
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	if i := strings.Index(file, "MarketPulse/"); i >= 0 {
		file = file[i+len("MarketPulse/"):]
	}
	return fmt.Sprintf("%s:%d", file, line)
}

package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures shell events.
type Logger struct {
	Record LogRecorder

	// Now returns the event time, defaults to time.Now.
	Now func() time.Time
}

// NewJSONLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := protojson.Marshal(le.Struct)
			if err != nil {
				return err
			}

			// protojson output is not stable, one entry per line is.
			var buf bytes.Buffer
			if err := json.Compact(&buf, entry); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, buf.String())
			return err
		},
	}
}

// Discard is a Logger that drops every event.
func Discard() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

func (l *Logger) record(sessionID, eventType string, fields map[string]interface{}) error {
	le, err := newLogEntry(eventType, sessionID, l.now(), fields)
	if err != nil {
		return err
	}
	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) SessionStart(hostname string, isPTY bool) error {
	return l.record(l.sessionID, TypeSessionStart, map[string]interface{}{
		FieldHostname: hostname,
		FieldIsPTY:    isPTY,
	})
}

// RunBuiltin records a completed builtin and its exit status.
func (l *SessionLogger) RunBuiltin(argv []string, status int) error {
	return l.record(l.sessionID, TypeRunBuiltin, map[string]interface{}{
		FieldCommand: toList(argv),
		FieldStatus:  status,
	})
}

// InvalidInvocation records a builtin that rejected its arguments.
func (l *SessionLogger) InvalidInvocation(argv []string, err error) error {
	return l.record(l.sessionID, TypeInvalidInvocation, map[string]interface{}{
		FieldCommand: toList(argv),
		FieldError:   fmt.Sprint(err),
	})
}

// UnknownCommand records a command that could not be run.
func (l *SessionLogger) UnknownCommand(argv []string, reason string) error {
	return l.record(l.sessionID, TypeUnknownCommand, map[string]interface{}{
		FieldCommand: toList(argv),
		FieldError:   reason,
	})
}

// Panic records a command that panicked. context holds the panic value and
// stack.
func (l *SessionLogger) Panic(argv []string, context string) error {
	return l.record(l.sessionID, TypePanic, map[string]interface{}{
		FieldCommand: toList(argv),
		FieldContext: context,
	})
}

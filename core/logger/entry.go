package logger

import (
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

// Event types.
const (
	TypeSessionStart      = "session_start"
	TypeRunBuiltin        = "run_builtin"
	TypeInvalidInvocation = "invalid_invocation"
	TypeUnknownCommand    = "unknown_command"
	TypePanic             = "panic"
)

// Well known field names.
const (
	FieldType            = "type"
	FieldSessionID       = "session_id"
	FieldTimestampMicros = "timestamp_micros"
	FieldCommand         = "command"
	FieldStatus          = "status"
	FieldError           = "error"
	FieldContext         = "context"
	FieldHostname        = "hostname"
	FieldIsPTY           = "is_pty"
)

// LogEntry is a single logged event.
type LogEntry struct {
	*structpb.Struct
}

func newLogEntry(eventType, sessionID string, now time.Time, fields map[string]interface{}) (*LogEntry, error) {
	raw := map[string]interface{}{
		FieldType:            eventType,
		FieldSessionID:       sessionID,
		FieldTimestampMicros: now.UnixMicro(),
	}
	for k, v := range fields {
		raw[k] = v
	}

	s, err := structpb.NewStruct(raw)
	if err != nil {
		return nil, err
	}
	return &LogEntry{Struct: s}, nil
}

func (le *LogEntry) field(name string) *structpb.Value {
	if le == nil || le.Struct == nil {
		return nil
	}
	return le.GetFields()[name]
}

// GetType returns the event type.
func (le *LogEntry) GetType() string {
	return le.field(FieldType).GetStringValue()
}

func (le *LogEntry) GetSessionId() string {
	return le.field(FieldSessionID).GetStringValue()
}

// GetTimestamp returns when the event was recorded.
func (le *LogEntry) GetTimestamp() time.Time {
	return time.UnixMicro(int64(le.field(FieldTimestampMicros).GetNumberValue()))
}

// GetCommand returns the argument vector the event is about, if any.
func (le *LogEntry) GetCommand() []string {
	var out []string
	for _, v := range le.field(FieldCommand).GetListValue().GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

// GetCommandName returns the first word of the command or the empty string.
func (le *LogEntry) GetCommandName() string {
	if cmd := le.GetCommand(); len(cmd) > 0 {
		return cmd[0]
	}
	return ""
}

func (le *LogEntry) GetStatus() int {
	return int(le.field(FieldStatus).GetNumberValue())
}

func (le *LogEntry) GetError() string {
	return le.field(FieldError).GetStringValue()
}

func (le *LogEntry) GetContext() string {
	return le.field(FieldContext).GetStringValue()
}

func (le *LogEntry) GetHostname() string {
	return le.field(FieldHostname).GetStringValue()
}

func (le *LogEntry) GetIsPty() bool {
	return le.field(FieldIsPTY).GetBoolValue()
}

func toList(vals []string) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

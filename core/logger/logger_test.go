package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.UnixMicro(1634000000000000)
}

func TestJSONLinesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLinesLogRecorder(&buf)
	l.Now = fixedClock
	session := l.NewSession()

	require.NoError(t, session.SessionStart("playground", true))
	require.NoError(t, session.RunBuiltin([]string{"seq", "3"}, 0))
	require.NoError(t, session.InvalidInvocation([]string{"dup2"}, errors.New("usage error")))
	require.NoError(t, session.UnknownCommand([]string{"ls", "-l"}, "not found"))
	require.NoError(t, session.Panic([]string{"seq", "1"}, "boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), line)
	}

	var entries []*LogEntry
	require.NoError(t, ReadJSONLinesLog(&buf, func(le *LogEntry) {
		entries = append(entries, le)
	}))
	require.Len(t, entries, 5)

	for _, le := range entries {
		assert.Equal(t, session.SessionID(), le.GetSessionId())
		assert.Equal(t, fixedClock(), le.GetTimestamp())
	}

	assert.Equal(t, TypeSessionStart, entries[0].GetType())
	assert.Equal(t, "playground", entries[0].GetHostname())
	assert.True(t, entries[0].GetIsPty())

	assert.Equal(t, TypeRunBuiltin, entries[1].GetType())
	assert.Equal(t, []string{"seq", "3"}, entries[1].GetCommand())
	assert.Equal(t, 0, entries[1].GetStatus())

	assert.Equal(t, TypeInvalidInvocation, entries[2].GetType())
	assert.Equal(t, "usage error", entries[2].GetError())

	assert.Equal(t, TypeUnknownCommand, entries[3].GetType())
	assert.Equal(t, "ls", entries[3].GetCommandName())

	assert.Equal(t, TypePanic, entries[4].GetType())
	assert.Equal(t, []string{"seq", "1"}, entries[4].GetCommand())
	assert.Equal(t, "boom", entries[4].GetContext())
	assert.Equal(t, "", entries[4].GetError())
}

func TestSessionless(t *testing.T) {
	var got []*LogEntry
	l := &Logger{Record: func(le *LogEntry) error {
		got = append(got, le)
		return nil
	}}

	require.NoError(t, l.Sessionless().RunBuiltin([]string{"getpid"}, 0))
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].GetSessionId())
}

func TestReadJSONLinesLog_invalid(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader(`{"type": "run_builtin"} [1, 2]`), func(*LogEntry) {})
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	log := strings.Join([]string{
		`{"type":"session_start","session_id":"1"}`,
		`{"type":"run_builtin","command":["seq","3"],"status":0}`,
		`{"type":"run_builtin","command":["seq","x"],"status":1}`,
		`{"type":"invalid_invocation","command":["dup2"],"error":"usage error"}`,
		`{"type":"invalid_invocation","command":["dup2"],"error":"usage error"}`,
		`{"type":"unknown_command","command":["ls"],"error":"not found"}`,
		`{"type":"panic","command":["seq"],"context":"boom"}`,
		`{"type":"mystery"}`,
	}, "\n")

	report := NewReport()
	require.NoError(t, ReadJSONLinesLog(strings.NewReader(log), report.Update))

	assert.Equal(t, 8, report.LogEntries)
	assert.Equal(t, 1, report.Sessions)
	assert.Equal(t, 2, report.CommandNames.Get("seq"))
	assert.Equal(t, 1, report.CommandStatuses.Get("1"))
	assert.Equal(t, 2, report.InvalidInvocations.Get("dup2", "usage error"))
	assert.Equal(t, 1, report.UnknownCommands.Get("ls", "not found"))
	assert.Equal(t, []string{"seq: boom"}, report.Panics)
	assert.Equal(t, 1, report.InvalidEntries.Get("mystery"))

	_, err := json.Marshal(report)
	assert.NoError(t, err)
}

func TestPathCounter_MarshalJSON(t *testing.T) {
	ctr := NewPathCounter("command", "error")
	ctr.Increment("b", "x")
	ctr.Increment("a", "y")
	ctr.Increment("a", "y")

	out, err := json.Marshal(ctr)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"count": 2, "event": {"command": "a", "error": "y"}},
		{"count": 1, "event": {"command": "b", "error": "x"}}
	]`, string(out))

	assert.Panics(t, func() { ctr.Increment("too few") })
}

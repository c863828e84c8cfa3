package commands

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/loadables/core/argutil"
	"github.com/josephlewis42/loadables/core/vos"
	"github.com/josephlewis42/loadables/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	cases := []struct {
		escaped  string
		expected string
	}{
		{"not escaped", "not escaped"},
		{`newline\n`, "newline\n"},
		{`double-escape\\n`, `double-escape\n`},
		// Octal
		{`\07`, string(rune(7))},
		{`\011`, "\t"},
		{`\0101`, "A"},
		// Hex
		{`\x7`, string(rune(07))},
		{`\x9`, "\t"},
		{`\x4A`, "J"},
	}

	for _, tc := range cases {
		t.Run(tc.escaped, func(t *testing.T) {
			actual := unescape(tc.escaped)

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFdecho(t *testing.T) {
	cases := []struct {
		args     []string
		expected string
	}{
		{[]string{"1", "hello"}, "hello\n"},
		{[]string{"1"}, "\n"},
		{[]string{"-n", "1", "hello"}, "hello"},
		{[]string{"-e", "1", `a\tb`}, "a\tb\n"},
		{[]string{"-en", "1", `a\nb`}, "a\nb"},
	}

	for _, tc := range cases {
		cmd := vostest.Command(Fdecho, "fdecho", tc.args...)
		out, err := cmd.Output()
		require.NoError(t, err)
		assert.Equal(t, argutil.ExecutionSuccess, cmd.ExitStatus)
		assert.Equal(t, tc.expected, string(out), "%q", tc.args)
	}
}

func TestFdecho_errors(t *testing.T) {
	cases := []struct {
		args     []string
		status   int
		expected string
	}{
		{nil, argutil.ExUsage, "fdecho: usage: fdecho [-en] FD [STRING]\n"},
		{[]string{"1", "a", "b"}, argutil.ExUsage, "fdecho: usage: fdecho [-en] FD [STRING]\n"},
		{[]string{"x", "a"}, argutil.ExUsage, "fdecho: usage: fdecho [-en] FD [STRING]\n"},
		{[]string{"9", "a"}, argutil.ExecutionFailure, "fdecho: 9: bad file descriptor\n"},
		{[]string{"0", "a"}, argutil.ExecutionFailure, "fdecho: write error: bad file descriptor\n"},
	}

	for _, tc := range cases {
		cmd := vostest.Command(Fdecho, "fdecho", tc.args...)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err)
		assert.Equal(t, tc.status, cmd.ExitStatus, "%q", tc.args)
		assert.Equal(t, tc.expected, string(out), "%q", tc.args)
	}
}

func TestOpen(t *testing.T) {
	out := &bytes.Buffer{}
	fs := afero.NewMemMapFs()
	table := vos.NewFileTable(nil, out, out)

	withFS := func(cmd *vostest.Cmd) *vostest.Cmd {
		cmd.FS = fs
		cmd.Env = []string{"PWD=/tmp"}
		return cmd
	}

	runShared(t, table,
		withFS(vostest.Command(Open, "open", "-w", "5", "notes.txt")),
		withFS(vostest.Command(Fdecho, "fdecho", "5", "first")),
		withFS(vostest.Command(Close, "close", "5")),
		withFS(vostest.Command(Open, "open", "-a", "5", "/tmp/notes.txt")),
		withFS(vostest.Command(Fdecho, "fdecho", "5", "second")),
		withFS(vostest.Command(Close, "close", "5")),
	)

	contents, err := afero.ReadFile(fs, "/tmp/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(contents))

	runShared(t, table,
		withFS(vostest.Command(Open, "open", "6", "notes.txt")),
		withFS(vostest.Command(Readn, "readn", "6", "5")),
	)
	assert.Equal(t, "first", out.String())
}

func TestOpen_errors(t *testing.T) {
	cmd := vostest.Command(Open, "open", "3", "/missing")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, argutil.ExecutionFailure, cmd.ExitStatus)
	assert.Contains(t, string(out), "open: /missing: ")

	cmd = vostest.Command(Open, "open", "-w", "-a", "3", "/x")
	out, err = cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, argutil.ExUsage, cmd.ExitStatus)
	assert.Equal(t, "open: -w and -a are mutually exclusive\nopen: usage: open [-w | -a] FD PATH\n", string(out))

	cmd = vostest.Command(Open, "open", "3")
	out, err = cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, argutil.ExUsage, cmd.ExitStatus)
	assert.Equal(t, "open: usage: open [-w | -a] FD PATH\n", string(out))

	cmd = vostest.Command(Open, "open", "4096", "/x")
	out, err = cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, argutil.ExecutionFailure, cmd.ExitStatus)
	assert.Contains(t, string(out), "bad file descriptor")
}

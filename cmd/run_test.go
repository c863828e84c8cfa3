package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/josephlewis42/loadables/commands"
	"github.com/josephlewis42/loadables/core/vos"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestRunBuiltin(t *testing.T) {
	cases := map[string]struct {
		argv     []string
		stdin    string
		status   int
		expected string
	}{
		"success": {
			argv:     []string{"seq", "2"},
			expected: "1\n2\n",
		},
		"usage": {
			argv:     []string{"dup2"},
			status:   2,
			expected: "dup2: usage: dup2 OLDFD NEWFD\n",
		},
		"stdin": {
			argv:     []string{"readn", "0", "3"},
			stdin:    "abcdef",
			expected: "abc",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			process, ok := commands.Lookup(tc.argv[0])
			assert.True(t, ok)

			var out bytes.Buffer
			status := runBuiltin(process, tc.argv, vos.ProcAttr{
				Stdin:  strings.NewReader(tc.stdin),
				Stdout: &out,
				Stderr: &out,
				FS:     afero.NewMemMapFs(),
			}, &out)

			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.expected, out.String())
		})
	}
}

func TestRunBuiltin_panic(t *testing.T) {
	var out, trace bytes.Buffer
	status := runBuiltin(func(vos.VOS) int {
		panic("boom")
	}, []string{"bad"}, vos.ProcAttr{Stdout: &out, Stderr: &out}, &trace)

	assert.Equal(t, 1, status)
	assert.Equal(t, "bad: panic: boom\n", out.String())
	assert.Contains(t, trace.String(), "boom")
}

func TestPlaygroundFs(t *testing.T) {
	fs := playgroundFs()
	path := t.TempDir() + "/written"

	assert.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0600))
	exists, err := afero.Exists(afero.NewOsFs(), path)
	assert.NoError(t, err)
	assert.False(t, exists, "writes must not reach the host")
}

func TestBuiltinsCmd(t *testing.T) {
	var out bytes.Buffer
	builtinsCmd.SetOut(&out)
	assert.NoError(t, builtinsCmd.RunE(builtinsCmd, nil))

	assert.Contains(t, out.String(), "dup2\n")
	assert.Contains(t, out.String(), "shell:exit\n")
}
